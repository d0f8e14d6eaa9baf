package directory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atmbank/internal/account"
	"atmbank/internal/pin"
)

func openBasic(t *testing.T, d *Directory, name string, balance string) *account.Account {
	t.Helper()
	acct, err := d.Open(account.KindBasic, name, "1234", "1234", decimal.RequireFromString(balance), decimal.Zero)
	require.NoError(t, err)
	return acct
}

func TestOpenAssignsUnique6DigitNumbers(t *testing.T) {
	d := New()
	seen := make(map[int]bool)

	for i := 0; i < 200; i++ {
		acct := openBasic(t, d, "Holder", "10")
		n := acct.Number()
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
		assert.False(t, seen[n], "number %d issued twice", n)
		seen[n] = true
	}
	assert.Equal(t, 200, d.Len())
}

func TestOpenValidatesInput(t *testing.T) {
	d := New()

	_, err := d.Open(account.KindBasic, "A", "12a4", "12a4", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, pin.ErrInvalidPin)

	_, err = d.Open(account.KindBasic, "A", "1234", "4321", decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, pin.ErrPinMismatch)

	_, err = d.Open(account.KindBasic, "A", "1234", "1234", decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, account.ErrNonPositiveAmount)

	_, err = d.Open(account.KindInterest, "A", "1234", "1234", decimal.NewFromInt(10), decimal.Zero)
	assert.ErrorIs(t, err, account.ErrNonPositiveAmount)

	assert.Equal(t, 0, d.Len())
}

func TestOpenAllowsZeroStartingBalance(t *testing.T) {
	d := New()
	acct := openBasic(t, d, "Holder", "0")

	bal, err := acct.Balance()
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestLookupComposesExistenceAndPin(t *testing.T) {
	d := New()
	acct := openBasic(t, d, "Holder", "10")

	got, err := d.Lookup(acct.Number(), "1234")
	require.NoError(t, err)
	assert.Same(t, acct, got)

	_, err = d.Lookup(acct.Number(), "9999")
	assert.ErrorIs(t, err, pin.ErrWrongPin)

	unknown := 100000
	if acct.Number() == unknown {
		unknown = 100001
	}
	_, err = d.Lookup(unknown, "1234")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestExistsSignalsAbsenceAsError(t *testing.T) {
	d := New()
	acct := openBasic(t, d, "Holder", "10")

	unknown := 100000
	if acct.Number() == unknown {
		unknown = 100001
	}

	assert.NoError(t, d.Exists(acct.Number()))
	assert.ErrorIs(t, d.Exists(unknown), ErrAccountNotFound)
}

func TestCloseRequiresCorrectPin(t *testing.T) {
	d := New()
	acct := openBasic(t, d, "Holder", "10")

	assert.ErrorIs(t, d.Close(acct.Number(), "0000"), pin.ErrWrongPin)
	assert.NoError(t, d.Exists(acct.Number()))

	require.NoError(t, d.Close(acct.Number(), "1234"))
	_, err := d.Lookup(acct.Number(), "1234")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestRemoveIsUnconditional(t *testing.T) {
	d := New()
	acct := openBasic(t, d, "Holder", "10")

	require.NoError(t, d.Remove(acct.Number()))
	assert.ErrorIs(t, d.Remove(acct.Number()), ErrAccountNotFound)
}

func TestListReturnsSortedSummaries(t *testing.T) {
	d := New()
	openBasic(t, d, "A", "1")
	openBasic(t, d, "B", "2")
	openBasic(t, d, "C", "3")

	list := d.List()
	require.Len(t, list, 3)
	assert.Less(t, list[0].Number, list[1].Number)
	assert.Less(t, list[1].Number, list[2].Number)
}

func TestGenerateNumberExhaustion(t *testing.T) {
	d := New()
	// Narrow the band to three numbers so the namespace can actually fill.
	d.min, d.max = 100000, 100002

	for i := 0; i < 3; i++ {
		openBasic(t, d, "Holder", "1")
	}

	_, err := d.Open(account.KindBasic, "Overflow", "1234", "1234", decimal.NewFromInt(1), decimal.Zero)
	assert.ErrorIs(t, err, ErrNamespaceExhausted)

	// Closing an account frees its number for reuse.
	list := d.List()
	require.NoError(t, d.Remove(list[0].Number))
	acct, err := d.Open(account.KindBasic, "Reuse", "1234", "1234", decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, list[0].Number, acct.Number())
}
