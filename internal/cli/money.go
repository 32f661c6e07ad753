package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
)

var symbols = map[string]string{
	"USD": "$",
	"CAD": "CA$",
	"AUD": "A$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"CHF": "CHF ",
}

// Money formats amounts for display in one currency.
type Money struct {
	printer *message.Printer
	code    string
	symbol  string
}

// NewMoney validates an ISO 4217 code and returns a formatter for it.
func NewMoney(code string) (*Money, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("%w: currency %q", common.ErrInvalidConfig, code)
	}

	iso := unit.String()
	symbol, ok := symbols[iso]
	if !ok {
		symbol = iso + " "
	}
	return &Money{
		printer: message.NewPrinter(language.English),
		code:    iso,
		symbol:  symbol,
	}, nil
}

// Code returns the ISO currency code.
func (m *Money) Code() string {
	return m.code
}

// Format renders amount with grouping and two decimals, e.g. -$1,234.50.
func (m *Money) Format(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}

	fixed := rounded.StringFixed(2)
	fraction := fixed[strings.IndexByte(fixed, '.')+1:]
	whole := m.printer.Sprintf("%d", rounded.IntPart())
	return sign + m.symbol + whole + "." + fraction
}

// Signed renders a non-negative transaction amount with the sign its type implies.
func (m *Money) Signed(amount decimal.Decimal, kind model.TransactionType) string {
	if kind == model.TypeIncome {
		return "+" + m.Format(amount)
	}
	return "-" + m.Format(amount.Abs())
}
