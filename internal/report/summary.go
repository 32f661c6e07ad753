// Package report derives dashboard figures from the entity collections.
// Every function is pure; callers pass snapshots taken from the store.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

// Uncategorized labels expenses whose category cannot be found.
const Uncategorized = "Uncategorized"

var hundred = decimal.NewFromInt(100)

// Summary holds the dashboard totals for one window.
type Summary struct {
	Range        service.DateRange
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	Net          decimal.Decimal
	TotalBalance decimal.Decimal
	Transactions int
}

// Summarize totals income and expenses inside r. TotalBalance is the sum of
// every account balance regardless of the window.
func Summarize(transactions []model.Transaction, accounts []model.Account, r service.DateRange) Summary {
	s := Summary{
		Range:        r,
		Income:       decimal.Zero,
		Expenses:     decimal.Zero,
		TotalBalance: decimal.Zero,
	}
	for _, t := range transactions {
		if !r.Contains(t.Date) {
			continue
		}
		s.Transactions++
		if t.Type == model.TypeIncome {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expenses = s.Expenses.Add(t.Amount)
		}
	}
	for _, a := range accounts {
		s.TotalBalance = s.TotalBalance.Add(a.Balance)
	}
	s.Net = s.Income.Sub(s.Expenses)
	return s
}

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Total      decimal.Decimal
	CategoryID string
	Name       string
	Color      string
}

// ExpensesByCategory sums expenses inside r per category, largest first.
// Ties keep the order in which categories first appear. Expenses whose
// category is unknown are grouped under Uncategorized.
func ExpensesByCategory(transactions []model.Transaction, categories []model.Category, r service.DateRange) []CategoryTotal {
	byID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	index := make(map[string]int)
	var totals []CategoryTotal
	for _, t := range transactions {
		if t.Type != model.TypeExpense || !r.Contains(t.Date) {
			continue
		}

		key := t.Category
		c, ok := byID[t.Category]
		if !ok {
			key = ""
		}
		i, seen := index[key]
		if !seen {
			total := CategoryTotal{Total: decimal.Zero, Name: Uncategorized}
			if ok {
				total = CategoryTotal{Total: decimal.Zero, CategoryID: c.ID, Name: c.Name, Color: c.Color}
			}
			i = len(totals)
			index[key] = i
			totals = append(totals, total)
		}
		totals[i].Total = totals[i].Total.Add(t.Amount)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	return totals
}

// DayTotal is one point of the daily trend.
type DayTotal struct {
	Date    model.Date
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// DailyTrend returns per-day totals for the days days ending on today, oldest first.
// Days without transactions are present with zero totals.
func DailyTrend(transactions []model.Transaction, today model.Date, days int) []DayTotal {
	if days <= 0 {
		return nil
	}

	start := today.AddDays(-(days - 1))
	trend := make([]DayTotal, days)
	for i := range trend {
		trend[i] = DayTotal{Date: start.AddDays(i), Income: decimal.Zero, Expense: decimal.Zero}
	}

	for _, t := range transactions {
		if !t.Date.Between(start, today) {
			continue
		}
		i := daysBetween(start, t.Date)
		if t.Type == model.TypeIncome {
			trend[i].Income = trend[i].Income.Add(t.Amount)
		} else {
			trend[i].Expense = trend[i].Expense.Add(t.Amount)
		}
	}
	return trend
}

func daysBetween(from, to model.Date) int {
	return int(to.Time().Sub(from.Time()).Hours() / 24)
}

// Comparison contrasts one category's total across two windows.
type Comparison struct {
	Current          service.DateRange
	Previous         service.DateRange
	CurrentTotal     decimal.Decimal
	PreviousTotal    decimal.Decimal
	PercentageChange decimal.Decimal
}

// CompareCategory totals every transaction in categoryID for both windows.
// With nothing in the previous window the change is 100 when the current
// total is positive and 0 otherwise.
func CompareCategory(transactions []model.Transaction, categoryID string, current, previous service.DateRange) Comparison {
	c := Comparison{
		Current:       current,
		Previous:      previous,
		CurrentTotal:  decimal.Zero,
		PreviousTotal: decimal.Zero,
	}
	for _, t := range transactions {
		if t.Category != categoryID {
			continue
		}
		if current.Contains(t.Date) {
			c.CurrentTotal = c.CurrentTotal.Add(t.Amount)
		}
		if previous.Contains(t.Date) {
			c.PreviousTotal = c.PreviousTotal.Add(t.Amount)
		}
	}

	switch {
	case c.PreviousTotal.IsZero() && c.CurrentTotal.IsPositive():
		c.PercentageChange = hundred
	case c.PreviousTotal.IsZero():
		c.PercentageChange = decimal.Zero
	default:
		c.PercentageChange = c.CurrentTotal.Sub(c.PreviousTotal).Div(c.PreviousTotal).Mul(hundred).Round(2)
	}
	return c
}

// PrecedingRange returns the window of equal length ending the day before r starts.
func PrecedingRange(r service.DateRange) service.DateRange {
	length := daysBetween(r.Start, r.End)
	end := r.Start.AddDays(-1)
	return service.DateRange{Start: end.AddDays(-length), End: end}
}
