// Package budget derives each budget's spent total from the transaction set
// and reports how far along each budget is.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/model"
)

// Spent sums the expense transactions in b's category whose date falls in
// b's inclusive window.
func Spent(b model.Budget, transactions []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		if b.Counts(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Recalculate returns a copy of budgets with every Spent field re-derived
// from transactions. The input slice is not modified, and running it again
// on the same transactions yields the same values.
func Recalculate(budgets []model.Budget, transactions []model.Transaction) []model.Budget {
	out := make([]model.Budget, len(budgets))
	for i, b := range budgets {
		b.Spent = Spent(b, transactions)
		out[i] = b
	}
	return out
}

// Changed lists the ids of budgets whose Spent differs between before and
// after. Both slices must be in the same order, as Recalculate returns them.
func Changed(before, after []model.Budget) []string {
	var ids []string
	for i := range before {
		if i >= len(after) {
			break
		}
		if !before[i].Spent.Equal(after[i].Spent) {
			ids = append(ids, after[i].ID)
		}
	}
	return ids
}
