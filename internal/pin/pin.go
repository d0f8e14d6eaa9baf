// Package pin validates and stores 4-digit account PINs.
package pin

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidPin means the PIN is not exactly four digits.
	ErrInvalidPin = errors.New("pin must be exactly 4 digits")

	// ErrPinMismatch means the PIN and its confirmation differ.
	ErrPinMismatch = errors.New("pins do not match")

	// ErrWrongPin means the supplied PIN does not match the stored one.
	ErrWrongPin = errors.New("incorrect pin")
)

const pinLength = 4

// ValidateFormat checks that p is exactly four ASCII digits.
func ValidateFormat(p string) error {
	if len(p) != pinLength {
		return ErrInvalidPin
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return ErrInvalidPin
		}
	}
	return nil
}

// ConfirmMatch checks that the two entries are byte-for-byte identical.
func ConfirmMatch(p, confirm string) error {
	if p != confirm {
		return ErrPinMismatch
	}
	return nil
}

// Hash returns the bcrypt digest of a PIN for at-rest storage.
func Hash(p string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(p), bcrypt.DefaultCost)
}

// Verify compares a candidate PIN against a stored digest. Any candidate
// that is not an exact match of the original fails with ErrWrongPin.
func Verify(digest []byte, candidate string) error {
	if err := bcrypt.CompareHashAndPassword(digest, []byte(candidate)); err != nil {
		return ErrWrongPin
	}
	return nil
}
