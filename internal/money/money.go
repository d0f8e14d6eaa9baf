// Package money renders decimal amounts as locale-aware currency strings.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders amounts for one locale and currency unit. Stored
// balances stay decimal.Decimal; formatting is display-only.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter builds a formatter for a BCP 47 locale tag and an ISO 4217
// currency code.
func NewFormatter(locale, code string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, err
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, err
	}
	return &Formatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Format renders d with the locale's narrow currency symbol and two
// decimal places, e.g. "$1,234.50" for en-US/USD.
func (f *Formatter) Format(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	return f.printer.Sprint(currency.NarrowSymbol(f.unit.Amount(v)))
}
