package report

import (
	"sort"
	"strings"

	"github.com/Veraticus/expense-track/internal/model"
)

// Filter selects transactions for the transaction list. Zero fields match everything.
type Filter struct {
	From     model.Date
	To       model.Date
	Type     model.TransactionType
	Category string
	Account  string
	Search   string
}

// Matches reports whether t passes every set criterion.
func (f Filter) Matches(t model.Transaction) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Account != "" && t.Account != f.Account {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Description), strings.ToLower(f.Search)) {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// FilterTransactions returns the matching transactions, newest first.
// Transactions on the same day keep their store order.
func FilterTransactions(transactions []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
