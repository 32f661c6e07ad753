package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/expense-track/internal/model"
)

func withSpent(category, limit, spent string) model.Budget {
	b := march(category, limit)
	b.Spent = dec(spent)
	return b
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		spent   string
		percent int
		status  Status
	}{
		{spent: "0", percent: 0, status: StatusOnTrack},
		{spent: "49.4", percent: 49, status: StatusOnTrack},
		{spent: "49.5", percent: 50, status: StatusModerate},
		{spent: "84", percent: 84, status: StatusModerate},
		{spent: "85", percent: 85, status: StatusWarning},
		{spent: "99.4", percent: 99, status: StatusWarning},
		{spent: "100", percent: 100, status: StatusOver},
		{spent: "250", percent: 100, status: StatusOver},
	}

	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			b := withSpent("food", "100", tt.spent)
			assert.Equal(t, tt.percent, PercentUsed(b))
			assert.Equal(t, tt.status, StatusOf(b))
		})
	}
}

func TestRatio_ZeroLimit(t *testing.T) {
	assert.True(t, Ratio(withSpent("food", "0", "0")).IsZero())
	assert.Equal(t, StatusOver, StatusOf(withSpent("food", "0", "1")))
}

func TestProgressOf(t *testing.T) {
	p := ProgressOf(withSpent("food", "200", "250"))
	assert.True(t, dec("-50").Equal(p.Remaining))
	assert.Equal(t, 100, p.Percent)
	assert.Equal(t, StatusOver, p.Status)
}

func TestByUsage(t *testing.T) {
	progress := ByUsage([]model.Budget{
		withSpent("a", "100", "10"),
		withSpent("b", "100", "90"),
		withSpent("c", "50", "45"),
		withSpent("d", "100", "150"),
	})

	require.Len(t, progress, 4)
	names := []string{progress[0].Budget.Name, progress[1].Budget.Name, progress[2].Budget.Name, progress[3].Budget.Name}
	// b and c are both at 90%; stable order keeps b first.
	assert.Equal(t, []string{"d", "b", "c", "a"}, names)
}
