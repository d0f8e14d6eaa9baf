package admin

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atmbank/internal/account"
	"atmbank/internal/directory"
	"atmbank/internal/pin"
)

type fixture struct {
	svc   *Service
	dir   *directory.Directory
	admin *account.Account
	basic *account.Account
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := directory.New()
	svc := NewService(dir, zap.NewNop().Sugar())

	adm, err := dir.Open(account.KindAdmin, "Root", "0000", "0000", decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	basic, err := dir.Open(account.KindBasic, "Holder", "1234", "1234", decimal.NewFromInt(100), decimal.Zero)
	require.NoError(t, err)

	return fixture{svc: svc, dir: dir, admin: adm, basic: basic}
}

func lastEntry(t *testing.T, a *account.Account) account.Entry {
	t.Helper()
	h := a.History()
	require.NotEmpty(t, h)
	return h[len(h)-1]
}

func TestNonAdminIsRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateAccount(f.basic, account.KindBasic, "X", "1111", "1111", decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, account.ErrWrongAccountType)
	assert.ErrorIs(t, f.svc.EditName(f.basic, f.basic.Number(), "X"), account.ErrWrongAccountType)
	assert.ErrorIs(t, f.svc.DeleteAccount(f.basic, f.basic.Number()), account.ErrWrongAccountType)
	_, err = f.svc.ListAccounts(f.basic)
	assert.ErrorIs(t, err, account.ErrWrongAccountType)
}

func TestCreateAccountAuditsAdminHistory(t *testing.T) {
	f := newFixture(t)

	number, err := f.svc.CreateAccount(f.admin, account.KindInterest, "Saver", "2222", "2222", decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.NoError(t, f.dir.Exists(number))

	entry := lastEntry(t, f.admin)
	assert.Equal(t, fmt.Sprintf("Created Interest-Bearing Account #%d.", number), entry.Text)

	// The new account's history holds only its opening entry.
	created, err := f.dir.Get(number)
	require.NoError(t, err)
	h := created.History()
	require.Len(t, h, 1)
	assert.Equal(t, "Account Opened.", h[0].Text)
}

func TestCreateAccountFailureLeavesNoAudit(t *testing.T) {
	f := newFixture(t)
	before := len(f.admin.History())

	_, err := f.svc.CreateAccount(f.admin, account.KindBasic, "X", "12a4", "12a4", decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, pin.ErrInvalidPin)
	assert.Len(t, f.admin.History(), before)
}

func TestEditName(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.EditName(f.admin, f.basic.Number(), "Renamed"))
	assert.Equal(t, "Renamed", f.basic.Name())
	assert.Contains(t, lastEntry(t, f.admin).Text, "Changed Name On Account #")
}

func TestEditPIN(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.EditPIN(f.admin, f.basic.Number(), "9876", "9876"))
	assert.NoError(t, f.basic.VerifyPIN("9876"))

	before := len(f.admin.History())
	assert.ErrorIs(t, f.svc.EditPIN(f.admin, f.basic.Number(), "98", "98"), pin.ErrInvalidPin)
	assert.Len(t, f.admin.History(), before, "failed edit must not be audited")
}

func TestEditHistoryAppendsAnnotation(t *testing.T) {
	f := newFixture(t)
	before := len(f.basic.History())

	require.NoError(t, f.svc.EditHistory(f.admin, f.basic.Number(), "manual correction"))

	h := f.basic.History()
	require.Len(t, h, before+1)
	assert.Contains(t, h[len(h)-1].Text, "Administrator Note: manual correction")
	assert.Contains(t, lastEntry(t, f.admin).Text, "Changed History On Account #")
}

func TestEditBalance(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.EditBalance(f.admin, f.basic.Number(), decimal.NewFromInt(500)))
	bal, err := f.basic.Balance()
	require.NoError(t, err)
	assert.True(t, bal.Equal(decimal.NewFromInt(500)))

	// Wrong variant: the admin's own record holds no balance.
	before := len(f.admin.History())
	err = f.svc.EditBalance(f.admin, f.admin.Number(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, account.ErrWrongAccountType)
	assert.Len(t, f.admin.History(), before)

	// Non-positive balance rejected.
	assert.ErrorIs(t, f.svc.EditBalance(f.admin, f.basic.Number(), decimal.Zero), account.ErrNonPositiveAmount)
}

func TestEditInterestRate(t *testing.T) {
	f := newFixture(t)

	number, err := f.svc.CreateAccount(f.admin, account.KindInterest, "Saver", "2222", "2222", decimal.NewFromInt(10), decimal.NewFromInt(2))
	require.NoError(t, err)

	require.NoError(t, f.svc.EditInterestRate(f.admin, number, decimal.RequireFromString("3.5")))
	saver, err := f.dir.Get(number)
	require.NoError(t, err)
	rate, err := saver.InterestRate()
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("3.5")))

	// Basic accounts carry no rate.
	err = f.svc.EditInterestRate(f.admin, f.basic.Number(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, account.ErrWrongAccountType)
}

func TestDeleteAccountIgnoresPin(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.DeleteAccount(f.admin, f.basic.Number()))
	assert.ErrorIs(t, f.dir.Exists(f.basic.Number()), directory.ErrAccountNotFound)
	assert.Contains(t, lastEntry(t, f.admin).Text, "Deleted Account #")

	assert.ErrorIs(t, f.svc.DeleteAccount(f.admin, f.basic.Number()), directory.ErrAccountNotFound)
}

func TestListAccounts(t *testing.T) {
	f := newFixture(t)

	list, err := f.svc.ListAccounts(f.admin)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
