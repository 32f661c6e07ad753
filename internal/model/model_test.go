package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseTransactionType(t *testing.T) {
	assert.Equal(t, TypeIncome, ParseTransactionType("income"))
	assert.Equal(t, TypeIncome, ParseTransactionType(" INCOME "))
	assert.Equal(t, TypeExpense, ParseTransactionType("expense"))
	assert.Equal(t, TypeExpense, ParseTransactionType(""))
	assert.Equal(t, TypeExpense, ParseTransactionType("refund"))
}

func TestTypeFromSign(t *testing.T) {
	assert.Equal(t, TypeExpense, TypeFromSign(decimal.NewFromInt(-1)))
	assert.Equal(t, TypeIncome, TypeFromSign(decimal.Zero))
	assert.Equal(t, TypeIncome, TypeFromSign(decimal.NewFromInt(5)))
}

func TestTransactionPatch(t *testing.T) {
	txn := Transaction{ID: "t1", Description: "old", Amount: decimal.NewFromInt(1), Type: TypeExpense}
	desc := "new"

	assert.True(t, TransactionPatch{}.IsEmpty())
	patch := TransactionPatch{Description: &desc}
	assert.False(t, patch.IsEmpty())

	patch.Apply(&txn)
	assert.Equal(t, "new", txn.Description)
	assert.Equal(t, TypeExpense, txn.Type)
	assert.True(t, decimal.NewFromInt(1).Equal(txn.Amount))
}

func TestBudget_Counts(t *testing.T) {
	b := Budget{
		Category:  "food",
		StartDate: MustParseDate("2024-03-01"),
		EndDate:   MustParseDate("2024-03-31"),
		Amount:    decimal.NewFromInt(100),
		Spent:     decimal.NewFromInt(120),
	}

	assert.True(t, b.Counts(Transaction{Type: TypeExpense, Category: "food", Date: MustParseDate("2024-03-31")}))
	assert.False(t, b.Counts(Transaction{Type: TypeIncome, Category: "food", Date: MustParseDate("2024-03-10")}))
	assert.False(t, b.Counts(Transaction{Type: TypeExpense, Category: "fun", Date: MustParseDate("2024-03-10")}))
	assert.False(t, b.Counts(Transaction{Type: TypeExpense, Category: "food", Date: MustParseDate("2024-04-01")}))
	assert.True(t, decimal.NewFromInt(-20).Equal(b.Remaining()))
}

func TestBudgetInput_StartsWithZeroSpent(t *testing.T) {
	b := BudgetInput{Name: "Food", Amount: decimal.NewFromInt(100)}.Budget("b1")
	assert.Equal(t, "b1", b.ID)
	assert.True(t, b.Spent.IsZero())
}

func TestDraft_Inputs(t *testing.T) {
	drafts := []Draft{
		{Description: "a", Category: "c1", Account: "a1", CategoryName: "ignored", Type: TypeIncome},
		{Description: "b"},
	}

	inputs := Inputs(drafts)
	assert.Len(t, inputs, 2)
	assert.Equal(t, "c1", inputs[0].Category)
	assert.Equal(t, "a1", inputs[0].Account)
	assert.Equal(t, TypeIncome, inputs[0].Type)
	assert.Equal(t, "b", inputs[1].Description)
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.True(t, PeriodYearly.Valid())
	assert.False(t, BudgetPeriod("daily").Valid())
	assert.True(t, AccountInvestment.Valid())
	assert.False(t, AccountType("loan").Valid())
}
