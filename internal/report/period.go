package report

import (
	"fmt"
	"strings"

	"github.com/Veraticus/expense-track/internal/common"
	"github.com/Veraticus/expense-track/internal/model"
	"github.com/Veraticus/expense-track/internal/service"
)

// Period names a dashboard reporting window relative to today.
type Period string

// Named periods.
const (
	PeriodThisMonth    Period = "this-month"
	PeriodLastMonth    Period = "last-month"
	PeriodThreeMonths  Period = "3months"
	PeriodSixMonths    Period = "6months"
	PeriodTwelveMonths Period = "12months"
)

// Periods lists every named period in display order.
var Periods = []Period{PeriodThisMonth, PeriodLastMonth, PeriodThreeMonths, PeriodSixMonths, PeriodTwelveMonths}

var monthsBack = map[Period]int{
	PeriodThreeMonths:  3,
	PeriodSixMonths:    6,
	PeriodTwelveMonths: 12,
}

// ParsePeriod accepts a period name case-insensitively. Empty means this month.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PeriodThisMonth, nil
	}
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown period %q", common.ErrInvalidConfig, s)
}

// Label returns a human-readable title.
func (p Period) Label() string {
	switch p {
	case PeriodThisMonth:
		return "This Month"
	case PeriodLastMonth:
		return "Last Month"
	}
	return fmt.Sprintf("Last %d Months", monthsBack[p])
}

// Range returns the inclusive window for p as seen from today. Month
// periods cover whole calendar months; the N-month periods start at the
// beginning of the month N months back and end today.
func (p Period) Range(today model.Date) service.DateRange {
	switch p {
	case PeriodThisMonth:
		return service.DateRange{Start: today.StartOfMonth(), End: today.EndOfMonth()}
	case PeriodLastMonth:
		last := today.StartOfMonth().AddMonths(-1)
		return service.DateRange{Start: last, End: last.EndOfMonth()}
	}
	return service.DateRange{
		Start: today.StartOfMonth().AddMonths(-monthsBack[p]),
		End:   today,
	}
}

// TrendDays is the length of the daily trend shown alongside p.
func (p Period) TrendDays() int {
	if n, ok := monthsBack[p]; ok {
		return n * 30
	}
	return 30
}

// CompareWith names the window a category is compared against.
type CompareWith string

// Comparison windows.
const (
	CompareLastMonth CompareWith = "last-month"
	ComparePrevious  CompareWith = "previous"
)

// ParseCompareWith accepts a comparison name case-insensitively. Empty means last month.
func ParseCompareWith(s string) (CompareWith, error) {
	switch c := CompareWith(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return CompareLastMonth, nil
	case CompareLastMonth, ComparePrevious:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown comparison %q", common.ErrInvalidConfig, s)
}

// Range returns the window to compare current against. Last month is the
// calendar month before today regardless of current.
func (c CompareWith) Range(current service.DateRange, today model.Date) service.DateRange {
	if c == ComparePrevious {
		return PrecedingRange(current)
	}
	return PeriodLastMonth.Range(today)
}

