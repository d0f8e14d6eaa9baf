// Package account defines the account record and its variants.
//
// The reference hierarchy (base account, bank account, savings account,
// admin account) is flattened into a single record tagged by Kind. Money
// fields are only live for the money-holding kinds; every mutation goes
// through a method holding the account mutex.
package account

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"atmbank/internal/pin"
)

// Kind selects the account variant.
type Kind int

const (
	KindBasic Kind = iota
	KindInterest
	KindAdmin
)

// String returns the variant name used in listings and audit history.
func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "Basic"
	case KindInterest:
		return "Interest-Bearing"
	case KindAdmin:
		return "Administrator"
	default:
		return "Unknown"
	}
}

// HoldsMoney reports whether the variant carries a balance.
func (k Kind) HoldsMoney() bool {
	return k == KindBasic || k == KindInterest
}

// historyTimeLayout matches the reference log format, e.g.
// "01/18/2018 08:58 PM".
const historyTimeLayout = "01/02/2006 03:04 PM"

// Entry is a single append-only history record.
type Entry struct {
	ID   string
	Time time.Time
	Text string
}

// String renders the entry the way account history is displayed.
func (e Entry) String() string {
	return e.Time.Format(historyTimeLayout) + " - " + e.Text
}

func newEntry(text string) Entry {
	return Entry{ID: uuid.NewString(), Time: time.Now(), Text: text}
}

// Summary is a read-only snapshot of an account for listings.
type Summary struct {
	Number       int
	Kind         Kind
	Name         string
	Balance      decimal.Decimal
	InterestRate decimal.Decimal
}

// Account is a single account record. The number is immutable once
// assigned by the directory; everything else mutates under mu.
type Account struct {
	mu      sync.Mutex
	number  int
	kind    Kind
	name    string
	pinHash []byte
	history []Entry
	balance decimal.Decimal
	rate    decimal.Decimal
}

// New builds an account of the given kind with its opening history entry.
// Input validation (PIN format and confirmation, opening balance and rate
// bounds) is the directory's job; New only hashes the PIN and seeds state.
func New(number int, kind Kind, name, rawPin string, balance, rate decimal.Decimal) (*Account, error) {
	digest, err := pin.Hash(rawPin)
	if err != nil {
		return nil, err
	}
	return &Account{
		number:  number,
		kind:    kind,
		name:    name,
		pinHash: digest,
		history: []Entry{newEntry("Account Opened.")},
		balance: balance,
		rate:    rate,
	}, nil
}

// Number returns the immutable 6-digit account number.
func (a *Account) Number() int { return a.number }

// Kind returns the account variant.
func (a *Account) Kind() Kind { return a.kind }

// Name returns the holder's name.
func (a *Account) Name() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.name
}

// SetName replaces the holder's name.
func (a *Account) SetName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.name = name
}

// History returns a copy of the account's history log.
func (a *Account) History() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.history))
	copy(out, a.history)
	return out
}

// AppendHistory adds a timestamped entry to the log. History only grows;
// there is no way to truncate it.
func (a *Account) AppendHistory(text string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history = append(a.history, newEntry(text))
}

// Balance returns the current balance. Administrator accounts hold no
// money and fail ErrWrongAccountType.
func (a *Account) Balance() (decimal.Decimal, error) {
	if !a.kind.HoldsMoney() {
		return decimal.Decimal{}, ErrWrongAccountType
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance, nil
}

// SetBalance overwrites the balance (administrator edit path). The caller
// validates the new value.
func (a *Account) SetBalance(d decimal.Decimal) error {
	if !a.kind.HoldsMoney() {
		return ErrWrongAccountType
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = d
	return nil
}

// InterestRate returns the stored rate for interest-bearing accounts.
func (a *Account) InterestRate() (decimal.Decimal, error) {
	if a.kind != KindInterest {
		return decimal.Decimal{}, ErrWrongAccountType
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rate, nil
}

// SetInterestRate overwrites the rate (administrator edit path).
func (a *Account) SetInterestRate(d decimal.Decimal) error {
	if a.kind != KindInterest {
		return ErrWrongAccountType
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rate = d
	return nil
}

// Deposit adds a positive amount to the balance and logs note. Balance and
// history change together in one critical section.
func (a *Account) Deposit(amount decimal.Decimal, note string) error {
	if !a.kind.HoldsMoney() {
		return ErrWrongAccountType
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	a.history = append(a.history, newEntry(note))
	return nil
}

// Withdraw subtracts a positive amount not exceeding the balance and logs
// note. A failed withdrawal leaves balance and history untouched.
func (a *Account) Withdraw(amount decimal.Decimal, note string) error {
	if !a.kind.HoldsMoney() {
		return ErrWrongAccountType
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.history = append(a.history, newEntry(note))
	return nil
}

// TransferTo atomically debits a and credits to, appending debitNote and
// creditNote to the respective histories. Both account locks are taken in
// ascending-number order so concurrent transfers cannot deadlock. Any
// failure leaves both accounts unchanged.
func (a *Account) TransferTo(to *Account, amount decimal.Decimal, debitNote, creditNote string) error {
	if to == nil || !to.kind.HoldsMoney() {
		return ErrWrongAccountType
	}
	if !a.kind.HoldsMoney() {
		return ErrWrongAccountType
	}
	if a == to || a.number == to.number {
		return ErrSameAccount
	}
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}

	first, second := a, to
	if second.number < first.number {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	to.balance = to.balance.Add(amount)
	a.history = append(a.history, newEntry(debitNote))
	to.history = append(to.history, newEntry(creditNote))
	return nil
}

// ApplyInterest credits one period of interest (balance * rate / 100,
// rounded to cents) and returns the credited amount. The history note is
// appended by the caller, which owns the amount formatting.
func (a *Account) ApplyInterest() (decimal.Decimal, error) {
	if a.kind != KindInterest {
		return decimal.Decimal{}, ErrWrongAccountType
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	credited := a.balance.Mul(a.rate).Div(decimal.NewFromInt(100)).Round(2)
	a.balance = a.balance.Add(credited)
	return credited, nil
}

// VerifyPIN checks a candidate PIN against the stored digest.
func (a *Account) VerifyPIN(candidate string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return pin.Verify(a.pinHash, candidate)
}

// ChangePIN replaces the PIN after authenticating with the current one.
// The checks run in order: verify old, validate new format, confirm match.
// The first failure wins and the stored PIN stays as it was.
func (a *Account) ChangePIN(oldPin, newPin, confirmPin string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := pin.Verify(a.pinHash, oldPin); err != nil {
		return err
	}
	if err := pin.ValidateFormat(newPin); err != nil {
		return err
	}
	if err := pin.ConfirmMatch(newPin, confirmPin); err != nil {
		return err
	}
	digest, err := pin.Hash(newPin)
	if err != nil {
		return err
	}
	a.pinHash = digest
	a.history = append(a.history, newEntry("Pin Changed."))
	return nil
}

// SetPIN replaces the PIN without the old-PIN check (administrator edit
// path). Format and confirmation rules still apply.
func (a *Account) SetPIN(newPin, confirmPin string) error {
	if err := pin.ValidateFormat(newPin); err != nil {
		return err
	}
	if err := pin.ConfirmMatch(newPin, confirmPin); err != nil {
		return err
	}
	digest, err := pin.Hash(newPin)
	if err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pinHash = digest
	return nil
}

// Summary returns a read-only snapshot for listings.
func (a *Account) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Summary{
		Number:       a.number,
		Kind:         a.kind,
		Name:         a.name,
		Balance:      a.balance,
		InterestRate: a.rate,
	}
}
