package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/budget"
	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

func TestMoney_Format(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		amount   string
		expected string
	}{
		{"simple", "USD", "12.5", "$12.50"},
		{"grouped", "USD", "1234567.891", "$1,234,567.89"},
		{"negative", "USD", "-1234.5", "-$1,234.50"},
		{"zero", "USD", "0", "$0.00"},
		{"rounds half up", "USD", "0.005", "$0.01"},
		{"euro", "EUR", "99.99", "€99.99"},
		{"lowercase code", "gbp", "5", "£5.00"},
		{"unmapped symbol", "SEK", "1000", "SEK 1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Format(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestNewMoney_InvalidCode(t *testing.T) {
	for _, code := range []string{"", "DOLLARS", "12"} {
		_, err := NewMoney(code)
		require.Error(t, err, code)
		assert.True(t, errors.Is(err, common.ErrInvalidConfig))
	}
}

func TestMoney_Signed(t *testing.T) {
	m, err := NewMoney("USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", m.Code())

	assert.Equal(t, "+$3,000.00", m.Signed(decimal.NewFromInt(3000), model.TypeIncome))
	assert.Equal(t, "-$42.10", m.Signed(decimal.RequireFromString("42.1"), model.TypeExpense))
}

func TestProgressBar_ReportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	var reporter service.ProgressReporter = NewProgressBar(&buf, "Parsing")

	reporter.Start(3)
	for i := 1; i <= 3; i++ {
		reporter.Advance(i)
	}
	reporter.Finish()

	assert.Contains(t, buf.String(), "Parsing")
	assert.True(t, strings.Contains(buf.String(), "\n"))
}

func TestProgressBar_IgnoresUpdatesBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(&buf, "Parsing")

	assert.NotPanics(t, func() {
		bar.Advance(1)
		bar.Finish()
	})
	assert.Empty(t, buf.String())
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("saved"), "saved")
	assert.Contains(t, FormatSuccess("saved"), SuccessIcon)
	assert.Contains(t, FormatError("boom"), ErrorIcon)
	assert.Contains(t, FormatWarning("careful"), "careful")
	assert.Contains(t, FormatInfo("note"), "note")
	assert.Contains(t, FormatTitle("Summary"), "Summary")

	box := RenderBox("Totals", "Income 10")
	assert.Contains(t, box, "Totals")
	assert.Contains(t, box, "Income 10")
}

func TestProgressGauge(t *testing.T) {
	tests := []struct {
		percent  int
		expected string
	}{
		{0, "[..........]"},
		{50, "[#####.....]"},
		{100, "[##########]"},
		{150, "[##########]"},
		{-5, "[..........]"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ProgressGauge(tt.percent, 10), tt.percent)
	}
	assert.Empty(t, ProgressGauge(50, 0))
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"Date", "Description", "Amount"},
		[][]string{
			{"2024-03-01", "Coffee", "-$4.50"},
			{"2024-03-02", "Paycheck", "+$2,000.00"},
		},
	)

	for _, want := range []string{"Date", "Description", "Coffee", "Paycheck", "+$2,000.00"} {
		assert.Contains(t, out, want)
	}
}

func TestStatusAndAmountStyles(t *testing.T) {
	assert.Equal(t, ErrorStyle.GetForeground(), StatusStyle(budget.StatusOver).GetForeground())
	assert.Equal(t, WarningStyle.GetForeground(), StatusStyle(budget.StatusWarning).GetForeground())
	assert.Equal(t, SuccessStyle.GetForeground(), StatusStyle(budget.StatusOnTrack).GetForeground())
	assert.Equal(t, IncomeStyle.GetForeground(), AmountStyle(model.TypeIncome).GetForeground())
	assert.Equal(t, ExpenseStyle.GetForeground(), AmountStyle(model.TypeExpense).GetForeground())
}
