// Package directory is the in-memory registry of all open accounts.
//
// It owns the number → account mapping for the life of the process and is
// the only place account numbers are generated, so generation and
// registration stay atomic under one lock.
package directory

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"atmbank/internal/account"
	"atmbank/internal/pin"
)

// Account numbers are 6-digit integers.
const (
	minNumber = 100_000
	maxNumber = 999_999
)

// Directory maps account numbers to live account records.
type Directory struct {
	mu       sync.RWMutex
	accounts map[int]*account.Account

	// Number band, overridable in tests to exercise exhaustion.
	min, max int
}

// New returns an empty directory.
func New() *Directory {
	return &Directory{
		accounts: make(map[int]*account.Account),
		min:      minNumber,
		max:      maxNumber,
	}
}

// Open validates the creation request, assigns a fresh account number and
// registers the new record. The account history starts with its
// "Account Opened." entry.
//
// Opening balance may be zero but not negative; an interest-bearing
// account additionally needs a positive rate. Administrator accounts carry
// neither.
func (d *Directory) Open(kind account.Kind, name, rawPin, confirmPin string, balance, rate decimal.Decimal) (*account.Account, error) {
	if err := pin.ValidateFormat(rawPin); err != nil {
		return nil, err
	}
	if err := pin.ConfirmMatch(rawPin, confirmPin); err != nil {
		return nil, err
	}
	if kind.HoldsMoney() && balance.IsNegative() {
		return nil, account.ErrNonPositiveAmount
	}
	if kind == account.KindInterest && !rate.IsPositive() {
		return nil, account.ErrNonPositiveAmount
	}
	if !kind.HoldsMoney() {
		balance = decimal.Zero
		rate = decimal.Zero
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	number, err := d.generateNumber()
	if err != nil {
		return nil, err
	}
	acct, err := account.New(number, kind, name, rawPin, balance, rate)
	if err != nil {
		return nil, err
	}
	d.register(acct)
	return acct, nil
}

// generateNumber draws random 6-digit numbers until an unused one turns
// up. Caller holds the write lock. Returns ErrNamespaceExhausted once the
// whole band is in use instead of spinning forever.
func (d *Directory) generateNumber() (int, error) {
	span := d.max - d.min + 1
	if len(d.accounts) >= span {
		return 0, ErrNamespaceExhausted
	}
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(span)))
		if err != nil {
			return 0, fmt.Errorf("draw account number: %w", err)
		}
		candidate := d.min + int(n.Int64())
		if _, taken := d.accounts[candidate]; !taken {
			return candidate, nil
		}
	}
}

// register inserts the account under its number. Caller holds the write
// lock. A duplicate number is a programmer error: generation already
// guarantees uniqueness.
func (d *Directory) register(acct *account.Account) {
	if _, taken := d.accounts[acct.Number()]; taken {
		panic(fmt.Sprintf("directory: account number %d already registered", acct.Number()))
	}
	d.accounts[acct.Number()] = acct
}

// Exists reports absence as an error so callers treat an unknown number as
// a failure, not a branch.
func (d *Directory) Exists(number int) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if _, ok := d.accounts[number]; !ok {
		return ErrAccountNotFound
	}
	return nil
}

// Get returns the account registered under number without authentication.
// Used for administrator access and transfer target resolution.
func (d *Directory) Get(number int) (*account.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	acct, ok := d.accounts[number]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

// Lookup authenticates and returns an account: existence check first,
// then PIN verification.
func (d *Directory) Lookup(number int, rawPin string) (*account.Account, error) {
	acct, err := d.Get(number)
	if err != nil {
		return nil, err
	}
	if err := acct.VerifyPIN(rawPin); err != nil {
		return nil, err
	}
	return acct, nil
}

// Close removes the account after PIN authentication (self-service close).
// The number may later be reissued; uniqueness is only checked against
// currently open accounts.
func (d *Directory) Close(number int, rawPin string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	acct, ok := d.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	if err := acct.VerifyPIN(rawPin); err != nil {
		return err
	}
	delete(d.accounts, number)
	return nil
}

// Remove deletes the account unconditionally (administrator delete path).
func (d *Directory) Remove(number int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.accounts[number]; !ok {
		return ErrAccountNotFound
	}
	delete(d.accounts, number)
	return nil
}

// List returns summaries of every open account, sorted by number for
// stable output.
func (d *Directory) List() []account.Summary {
	d.mu.RLock()
	accts := make([]*account.Account, 0, len(d.accounts))
	for _, a := range d.accounts {
		accts = append(accts, a)
	}
	d.mu.RUnlock()

	out := make([]account.Summary, 0, len(accts))
	for _, a := range accts {
		out = append(out, a.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Len returns the count of open accounts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}
