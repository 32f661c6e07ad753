package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func march(category, limit string) model.Budget {
	return model.Budget{
		ID:        "b-" + category,
		Name:      category,
		Category:  category,
		Amount:    dec(limit),
		Period:    model.PeriodMonthly,
		StartDate: model.MustParseDate("2024-03-01"),
		EndDate:   model.MustParseDate("2024-03-31"),
	}
}

func txn(date, amount string, kind model.TransactionType, category string) model.Transaction {
	return model.Transaction{
		Date:     model.MustParseDate(date),
		Amount:   dec(amount),
		Type:     kind,
		Category: category,
	}
}

var transactions = []model.Transaction{
	txn("2024-02-29", "500", model.TypeExpense, "food"),
	txn("2024-03-01", "10", model.TypeExpense, "food"),
	txn("2024-03-15", "20.25", model.TypeExpense, "food"),
	txn("2024-03-31", "5", model.TypeExpense, "food"),
	txn("2024-04-01", "500", model.TypeExpense, "food"),
	txn("2024-03-15", "500", model.TypeIncome, "food"),
	txn("2024-03-15", "7", model.TypeExpense, "fun"),
}

func TestSpent(t *testing.T) {
	assert.True(t, dec("35.25").Equal(Spent(march("food", "100"), transactions)))
	assert.True(t, dec("7").Equal(Spent(march("fun", "100"), transactions)))
	assert.True(t, Spent(march("rent", "100"), transactions).IsZero())
	assert.True(t, Spent(march("food", "100"), nil).IsZero())
}

func TestRecalculate(t *testing.T) {
	stale := march("food", "100")
	stale.Spent = dec("999")
	budgets := []model.Budget{stale, march("fun", "50")}

	first := Recalculate(budgets, transactions)
	require.Len(t, first, 2)
	assert.True(t, dec("35.25").Equal(first[0].Spent))
	assert.True(t, dec("7").Equal(first[1].Spent))
	assert.True(t, dec("999").Equal(budgets[0].Spent), "input is not modified")

	second := Recalculate(first, transactions)
	assert.Equal(t, first, second)
	assert.Empty(t, Changed(first, second))
	assert.Equal(t, []string{"b-food", "b-fun"}, Changed(budgets, first))
}

func TestRecalculate_Empty(t *testing.T) {
	assert.Empty(t, Recalculate(nil, transactions))
}
