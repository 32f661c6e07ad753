package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

func d(s string) model.Date { return model.MustParseDate(s) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func txn(id, date, amount string, kind model.TransactionType, category string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        d(date),
		Amount:      dec(amount),
		Type:        kind,
		Category:    category,
		Description: "txn " + id,
	}
}

var sample = []model.Transaction{
	txn("t1", "2024-03-01", "2500", model.TypeIncome, "salary"),
	txn("t2", "2024-03-03", "40", model.TypeExpense, "groceries"),
	txn("t3", "2024-03-03", "25.50", model.TypeExpense, "dining"),
	txn("t4", "2024-03-10", "60", model.TypeExpense, "groceries"),
	txn("t5", "2024-02-20", "80", model.TypeExpense, "groceries"),
	txn("t6", "2024-03-12", "15", model.TypeExpense, "deleted-category"),
}

var sampleCategories = []model.Category{
	{ID: "groceries", Name: "Groceries", Type: model.TypeExpense, Color: "#4CAF50"},
	{ID: "dining", Name: "Dining Out", Type: model.TypeExpense},
	{ID: "salary", Name: "Salary", Type: model.TypeIncome},
}

func march() service.DateRange {
	return service.DateRange{Start: d("2024-03-01"), End: d("2024-03-31")}
}

func TestPeriod_Range(t *testing.T) {
	today := d("2024-05-15")

	tests := []struct {
		period Period
		start  string
		end    string
	}{
		{PeriodThisMonth, "2024-05-01", "2024-05-31"},
		{PeriodLastMonth, "2024-04-01", "2024-04-30"},
		{PeriodThreeMonths, "2024-02-01", "2024-05-15"},
		{PeriodSixMonths, "2023-11-01", "2024-05-15"},
		{PeriodTwelveMonths, "2023-05-01", "2024-05-15"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			r := tt.period.Range(today)
			assert.Equal(t, tt.start, r.Start.String())
			assert.Equal(t, tt.end, r.End.String())
		})
	}
}

func TestPeriod_LastMonthAcrossYear(t *testing.T) {
	r := PeriodLastMonth.Range(d("2024-01-31"))
	assert.Equal(t, "2023-12-01", r.Start.String())
	assert.Equal(t, "2023-12-31", r.End.String())
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodThisMonth, p)

	p, err = ParsePeriod(" 6MONTHS ")
	require.NoError(t, err)
	assert.Equal(t, PeriodSixMonths, p)

	_, err = ParsePeriod("fortnight")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	assert.Equal(t, "Last 3 Months", PeriodThreeMonths.Label())
	assert.Equal(t, 90, PeriodThreeMonths.TrendDays())
	assert.Equal(t, 30, PeriodLastMonth.TrendDays())
}

func TestSummarize(t *testing.T) {
	accounts := []model.Account{
		{ID: "a1", Balance: dec("1000")},
		{ID: "a2", Balance: dec("-250.25")},
	}

	s := Summarize(sample, accounts, march())

	assert.True(t, dec("2500").Equal(s.Income))
	assert.True(t, dec("140.50").Equal(s.Expenses), "expenses = %s", s.Expenses)
	assert.True(t, dec("2359.50").Equal(s.Net))
	assert.True(t, dec("749.75").Equal(s.TotalBalance))
	assert.Equal(t, 5, s.Transactions)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil, march())
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Expenses.IsZero())
	assert.True(t, s.Net.IsZero())
	assert.True(t, s.TotalBalance.IsZero())
}

func TestExpensesByCategory(t *testing.T) {
	totals := ExpensesByCategory(sample, sampleCategories, march())

	require.Len(t, totals, 3)
	assert.Equal(t, "Groceries", totals[0].Name)
	assert.Equal(t, "#4CAF50", totals[0].Color)
	assert.True(t, dec("100").Equal(totals[0].Total))
	assert.Equal(t, "Dining Out", totals[1].Name)
	assert.True(t, dec("25.50").Equal(totals[1].Total))
	assert.Equal(t, Uncategorized, totals[2].Name)
	assert.Empty(t, totals[2].CategoryID)
	assert.True(t, dec("15").Equal(totals[2].Total))
}

func TestDailyTrend(t *testing.T) {
	trend := DailyTrend(sample, d("2024-03-03"), 3)

	require.Len(t, trend, 3)
	assert.Equal(t, "2024-03-01", trend[0].Date.String())
	assert.True(t, dec("2500").Equal(trend[0].Income))
	assert.True(t, trend[0].Expense.IsZero())
	assert.True(t, trend[1].Income.IsZero())
	assert.True(t, trend[1].Expense.IsZero())
	assert.Equal(t, "2024-03-03", trend[2].Date.String())
	assert.True(t, dec("65.50").Equal(trend[2].Expense))

	assert.Nil(t, DailyTrend(sample, d("2024-03-03"), 0))
}

func TestCompareCategory(t *testing.T) {
	feb := service.DateRange{Start: d("2024-02-01"), End: d("2024-02-29")}

	c := CompareCategory(sample, "groceries", march(), feb)
	assert.True(t, dec("100").Equal(c.CurrentTotal))
	assert.True(t, dec("80").Equal(c.PreviousTotal))
	assert.True(t, dec("25").Equal(c.PercentageChange), "change = %s", c.PercentageChange)

	c = CompareCategory(sample, "dining", march(), feb)
	assert.True(t, dec("100").Equal(c.PercentageChange))

	c = CompareCategory(sample, "nothing", march(), feb)
	assert.True(t, c.PercentageChange.IsZero())
}

func TestCompareCategory_TwoDecimalChange(t *testing.T) {
	txns := []model.Transaction{
		txn("a", "2024-03-05", "40", model.TypeExpense, "groceries"),
		txn("b", "2024-02-05", "30", model.TypeExpense, "groceries"),
	}
	feb := service.DateRange{Start: d("2024-02-01"), End: d("2024-02-29")}

	c := CompareCategory(txns, "groceries", march(), feb)
	assert.Equal(t, "33.33", c.PercentageChange.StringFixed(2))
}

func TestParseCompareWith(t *testing.T) {
	c, err := ParseCompareWith("")
	require.NoError(t, err)
	assert.Equal(t, CompareLastMonth, c)

	c, err = ParseCompareWith(" Previous ")
	require.NoError(t, err)
	assert.Equal(t, ComparePrevious, c)

	_, err = ParseCompareWith("last-year")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestCompareWith_Range(t *testing.T) {
	today := d("2024-03-15")
	threeMonths := PeriodThreeMonths.Range(today)

	last := CompareLastMonth.Range(threeMonths, today)
	assert.Equal(t, "2024-02-01", last.Start.String())
	assert.Equal(t, "2024-02-29", last.End.String())

	prev := ComparePrevious.Range(march(), today)
	assert.Equal(t, "2024-01-30", prev.Start.String())
	assert.Equal(t, "2024-02-29", prev.End.String())
}

func TestPrecedingRange(t *testing.T) {
	r := PrecedingRange(service.DateRange{Start: d("2024-03-11"), End: d("2024-03-20")})
	assert.Equal(t, "2024-03-01", r.Start.String())
	assert.Equal(t, "2024-03-10", r.End.String())
}

func TestFilterTransactions(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "no filter newest first", filter: Filter{}, want: []string{"t6", "t4", "t2", "t3", "t1", "t5"}},
		{name: "by type", filter: Filter{Type: model.TypeIncome}, want: []string{"t1"}},
		{name: "by category", filter: Filter{Category: "groceries"}, want: []string{"t4", "t2", "t5"}},
		{name: "search case insensitive", filter: Filter{Search: "TXN T3"}, want: []string{"t3"}},
		{name: "date range inclusive", filter: Filter{From: d("2024-03-03"), To: d("2024-03-10")}, want: []string{"t4", "t2", "t3"}},
		{name: "open ended from", filter: Filter{From: d("2024-03-10")}, want: []string{"t6", "t4"}},
		{name: "nothing matches", filter: Filter{Account: "missing"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTransactions(sample, tt.filter)
			ids := make([]string, 0, len(got))
			for _, g := range got {
				ids = append(ids, g.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
