// Package admin implements the administrator operations: creating,
// editing, deleting and listing any account in the directory.
//
// Every operation authenticates the acting account as an administrator and
// writes an audit entry to the administrator's own history, never to the
// target's (except the explicit history annotation). Audit entries are
// appended only after the operation succeeded.
package admin

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"atmbank/internal/account"
	"atmbank/internal/directory"
	"atmbank/internal/engine"
)

// Service carries the administrator privileges over a directory.
type Service struct {
	dir *directory.Directory
	log *zap.SugaredLogger
}

// NewService builds the administrator service.
func NewService(dir *directory.Directory, log *zap.SugaredLogger) *Service {
	return &Service{dir: dir, log: log}
}

// requireAdmin gates every privileged operation.
func requireAdmin(acting *account.Account) error {
	if acting.Kind() != account.KindAdmin {
		return account.ErrWrongAccountType
	}
	return nil
}

// CreateAccount opens an account of any kind on behalf of an
// administrator and returns its number.
func (s *Service) CreateAccount(acting *account.Account, kind account.Kind, name, rawPin, confirmPin string, balance, rate decimal.Decimal) (int, error) {
	if err := requireAdmin(acting); err != nil {
		return 0, err
	}
	acct, err := s.dir.Open(kind, name, rawPin, confirmPin, balance, rate)
	if err != nil {
		return 0, err
	}
	acting.AppendHistory(fmt.Sprintf("Created %s Account #%d.", kind, acct.Number()))
	s.log.Infow("admin created account", "admin", acting.Number(), "account", acct.Number(), "kind", kind.String())
	return acct.Number(), nil
}

// EditName replaces the holder name on any account.
func (s *Service) EditName(acting *account.Account, number int, name string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	target, err := s.dir.Get(number)
	if err != nil {
		return err
	}
	target.SetName(name)
	acting.AppendHistory(fmt.Sprintf("Changed Name On Account #%d.", number))
	s.log.Infow("admin changed name", "admin", acting.Number(), "account", number)
	return nil
}

// EditPIN replaces the PIN on any account without the old-PIN check.
// Format and confirmation rules still apply.
func (s *Service) EditPIN(acting *account.Account, number int, newPin, confirmPin string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	target, err := s.dir.Get(number)
	if err != nil {
		return err
	}
	if err := target.SetPIN(newPin, confirmPin); err != nil {
		return err
	}
	acting.AppendHistory(fmt.Sprintf("Changed Pin On Account #%d.", number))
	s.log.Infow("admin changed pin", "admin", acting.Number(), "account", number)
	return nil
}

// EditHistory appends an administrator annotation to the target history.
// History stays append-only; nothing is replaced or truncated.
func (s *Service) EditHistory(acting *account.Account, number int, note string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	target, err := s.dir.Get(number)
	if err != nil {
		return err
	}
	target.AppendHistory(fmt.Sprintf("Administrator Note: %s", note))
	acting.AppendHistory(fmt.Sprintf("Changed History On Account #%d.", number))
	s.log.Infow("admin annotated history", "admin", acting.Number(), "account", number)
	return nil
}

// EditBalance overwrites the balance of a money account. The target must
// hold money and the new balance must be positive.
func (s *Service) EditBalance(acting *account.Account, number int, balance decimal.Decimal) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	target, err := s.dir.Get(number)
	if err != nil {
		return err
	}
	if !target.Kind().HoldsMoney() {
		return account.ErrWrongAccountType
	}
	if err := engine.CheckPositive(balance); err != nil {
		return err
	}
	if err := target.SetBalance(balance); err != nil {
		return err
	}
	acting.AppendHistory(fmt.Sprintf("Changed Balance On Account #%d.", number))
	s.log.Infow("admin changed balance", "admin", acting.Number(), "account", number, "balance", balance.String())
	return nil
}

// EditInterestRate overwrites the rate of an interest-bearing account.
func (s *Service) EditInterestRate(acting *account.Account, number int, rate decimal.Decimal) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	target, err := s.dir.Get(number)
	if err != nil {
		return err
	}
	if target.Kind() != account.KindInterest {
		return account.ErrWrongAccountType
	}
	if err := engine.CheckPositive(rate); err != nil {
		return err
	}
	if err := target.SetInterestRate(rate); err != nil {
		return err
	}
	acting.AppendHistory(fmt.Sprintf("Changed Interest Rate On Account #%d.", number))
	s.log.Infow("admin changed interest rate", "admin", acting.Number(), "account", number, "rate", rate.String())
	return nil
}

// DeleteAccount removes any account without a PIN check, unlike the
// self-service close.
func (s *Service) DeleteAccount(acting *account.Account, number int) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	if err := s.dir.Remove(number); err != nil {
		return err
	}
	acting.AppendHistory(fmt.Sprintf("Deleted Account #%d.", number))
	s.log.Infow("admin deleted account", "admin", acting.Number(), "account", number)
	return nil
}

// ListAccounts returns summaries of every open account.
func (s *Service) ListAccounts(acting *account.Account) ([]account.Summary, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	return s.dir.List(), nil
}
