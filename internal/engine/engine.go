// Package engine implements the balance-affecting operations for money
// accounts: deposit, withdraw, transfer, balance and interest queries.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atmbank/internal/account"
	"atmbank/internal/directory"
	"atmbank/internal/money"
)

// Engine runs transactions against accounts held in a directory. History
// entries are written with locale currency formatting so displayed amounts
// and logged amounts agree.
type Engine struct {
	dir   *directory.Directory
	money *money.Formatter
	log   *zap.SugaredLogger
}

// New builds an engine over the given directory.
func New(dir *directory.Directory, formatter *money.Formatter, log *zap.SugaredLogger) *Engine {
	return &Engine{dir: dir, money: formatter, log: log}
}

// CheckPositive validates a monetary input. Every amount fed to the
// engine must be strictly positive.
func CheckPositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return account.ErrNonPositiveAmount
	}
	return nil
}

// Deposit adds amount to the account balance and records it.
func (e *Engine) Deposit(acct *account.Account, amount decimal.Decimal) error {
	if err := CheckPositive(amount); err != nil {
		return err
	}
	note := fmt.Sprintf("Deposited %s.", e.money.Format(amount))
	if err := acct.Deposit(amount, note); err != nil {
		return err
	}
	e.log.Infow("deposit", "account", acct.Number(), "amount", amount.String())
	return nil
}

// Withdraw subtracts amount from the account balance and records it. The
// balance never goes negative; an overdraw fails ErrInsufficientFunds with
// no state change.
func (e *Engine) Withdraw(acct *account.Account, amount decimal.Decimal) error {
	if err := CheckPositive(amount); err != nil {
		return err
	}
	note := fmt.Sprintf("Withdrew %s.", e.money.Format(amount))
	if err := acct.Withdraw(amount, note); err != nil {
		return err
	}
	e.log.Infow("withdrawal", "account", acct.Number(), "amount", amount.String())
	return nil
}

// Transfer moves amount from acct to the account registered under
// toNumber as one atomic step, recording the counterparty on both
// histories. The target must be a money account.
func (e *Engine) Transfer(acct *account.Account, toNumber int, amount decimal.Decimal) error {
	if err := CheckPositive(amount); err != nil {
		return err
	}
	target, err := e.dir.Get(toNumber)
	if err != nil {
		return err
	}
	formatted := e.money.Format(amount)
	debitNote := fmt.Sprintf("Transferred %s to account #%d.", formatted, toNumber)
	creditNote := fmt.Sprintf("Received %s from account #%d.", formatted, acct.Number())
	if err := acct.TransferTo(target, amount, debitNote, creditNote); err != nil {
		return err
	}
	e.log.Infow("transfer", "from", acct.Number(), "to", toNumber, "amount", amount.String())
	return nil
}

// Balance returns the raw balance and its display form.
func (e *Engine) Balance(acct *account.Account) (decimal.Decimal, string, error) {
	bal, err := acct.Balance()
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	return bal, e.money.Format(bal), nil
}

// ApplyInterest credits one period of interest to an interest-bearing
// account. Accrual only happens through this explicit call; there is no
// scheduled job.
func (e *Engine) ApplyInterest(acct *account.Account) (decimal.Decimal, error) {
	credited, err := acct.ApplyInterest()
	if err != nil {
		return decimal.Decimal{}, err
	}
	acct.AppendHistory(fmt.Sprintf("Applied Interest Of %s.", e.money.Format(credited)))
	e.log.Infow("interest applied", "account", acct.Number(), "credited", credited.String())
	return credited, nil
}
