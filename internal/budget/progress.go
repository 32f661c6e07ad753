package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/expense-track/internal/model"
)

// Status buckets a budget by how much of its limit has been used.
type Status string

// Budget statuses, from least to most used.
const (
	StatusOnTrack  Status = "on-track"
	StatusModerate Status = "moderate"
	StatusWarning  Status = "warning"
	StatusOver     Status = "over"
)

var hundred = decimal.NewFromInt(100)

// Ratio returns spent / amount. A non-positive limit with any spending counts as fully used.
func Ratio(b model.Budget) decimal.Decimal {
	if !b.Amount.IsPositive() {
		if b.Spent.IsPositive() {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	}
	return b.Spent.Div(b.Amount)
}

// PercentUsed returns the rounded percentage of the limit spent, capped at 100.
func PercentUsed(b model.Budget) int {
	pct := Ratio(b).Mul(hundred).Round(0).IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// StatusOf classifies b by PercentUsed.
func StatusOf(b model.Budget) Status {
	pct := PercentUsed(b)
	switch {
	case pct >= 100:
		return StatusOver
	case pct >= 85:
		return StatusWarning
	case pct >= 50:
		return StatusModerate
	default:
		return StatusOnTrack
	}
}

// Progress is a budget together with its derived usage figures.
type Progress struct {
	Budget    model.Budget
	Remaining decimal.Decimal
	Percent   int
	Status    Status
}

// ProgressOf computes the usage figures for b.
func ProgressOf(b model.Budget) Progress {
	return Progress{
		Budget:    b,
		Remaining: b.Remaining(),
		Percent:   PercentUsed(b),
		Status:    StatusOf(b),
	}
}

// ByUsage returns progress for every budget, most used first.
func ByUsage(budgets []model.Budget) []Progress {
	out := make([]Progress, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, ProgressOf(b))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Ratio(out[i].Budget).GreaterThan(Ratio(out[j].Budget))
	})
	return out
}
