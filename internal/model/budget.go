package model

import "github.com/shopspring/decimal"

// BudgetPeriod is an advisory label; the date window is what counts.
type BudgetPeriod string

// Budget periods.
const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

// Valid reports whether p is one of the known periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a spending limit for one category over an inclusive date window.
//
// Spent is derived from the transaction set by the recalculation engine and
// is never set through the mutation API.
type Budget struct {
	StartDate Date            `json:"startDate"`
	EndDate   Date            `json:"endDate"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Period    BudgetPeriod    `json:"period"`
	Category  string          `json:"category"`
}

// Counts reports whether t contributes to the budget's spent total.
func (b Budget) Counts(t Transaction) bool {
	return t.Type == TypeExpense &&
		t.Category == b.Category &&
		t.Date.Between(b.StartDate, b.EndDate)
}

// Remaining returns the amount left before the limit is reached. It may be negative.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// BudgetInput holds the fields of a budget that has not been stored yet.
// There is deliberately no Spent field.
type BudgetInput struct {
	StartDate Date
	EndDate   Date
	Amount    decimal.Decimal
	Name      string
	Period    BudgetPeriod
	Category  string
}

// Budget turns the input into a stored budget with the given id and zero spent.
func (in BudgetInput) Budget(id string) Budget {
	return Budget{
		ID:        id,
		Name:      in.Name,
		Amount:    in.Amount,
		Spent:     decimal.Zero,
		Period:    in.Period,
		Category:  in.Category,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
}

// BudgetPatch is a partial update. Nil fields are left untouched.
type BudgetPatch struct {
	StartDate *Date
	EndDate   *Date
	Amount    *decimal.Decimal
	Name      *string
	Period    *BudgetPeriod
	Category  *string
}

// Apply merges the non-nil fields of p into b.
func (p BudgetPatch) Apply(b *Budget) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Amount != nil {
		b.Amount = *p.Amount
	}
	if p.Period != nil {
		b.Period = *p.Period
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.StartDate != nil {
		b.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		b.EndDate = *p.EndDate
	}
}
