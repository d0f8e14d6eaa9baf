package account

import "errors"

var (
	// ErrNonPositiveAmount means a monetary input was zero or negative
	// where a positive value is required.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds means a withdrawal or transfer exceeds the
	// current balance.
	ErrInsufficientFunds = errors.New("insufficient balance to complete this transaction")

	// ErrWrongAccountType means the operation is not supported by the
	// account's variant.
	ErrWrongAccountType = errors.New("operation not supported for this account type")

	// ErrSameAccount means a transfer named its own account as the target.
	ErrSameAccount = errors.New("cannot transfer to the same account")
)
