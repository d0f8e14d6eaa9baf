package directory

import "errors"

var (
	// ErrAccountNotFound means no account is registered under the number.
	ErrAccountNotFound = errors.New("this account does not exist, please check the account number")

	// ErrNamespaceExhausted means every number in the 6-digit band is in
	// use and no new account can be opened.
	ErrNamespaceExhausted = errors.New("no free account numbers remain")
)
