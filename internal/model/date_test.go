package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2024-02-29 ")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())

	for _, bad := range []string{"", "2023-02-29", "03/04/2024", "2024-3-4"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOf_IgnoresTimeOfDay(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	late := time.Date(2024, 3, 10, 23, 59, 0, 0, loc)

	assert.Equal(t, NewDate(2024, 3, 10), DateOf(late))
	assert.True(t, DateOf(late).Equal(MustParseDate("2024-03-10")))
}

func TestDate_Between(t *testing.T) {
	start, end := MustParseDate("2024-03-01"), MustParseDate("2024-03-31")

	assert.True(t, MustParseDate("2024-03-01").Between(start, end))
	assert.True(t, MustParseDate("2024-03-31").Between(start, end))
	assert.False(t, MustParseDate("2024-02-29").Between(start, end))
	assert.False(t, MustParseDate("2024-04-01").Between(start, end))
}

func TestDate_MonthArithmetic(t *testing.T) {
	d := MustParseDate("2024-02-14")

	assert.Equal(t, "2024-02-01", d.StartOfMonth().String())
	assert.Equal(t, "2024-02-29", d.EndOfMonth().String())
	assert.Equal(t, "2023-12-01", d.StartOfMonth().AddMonths(-2).String())
	assert.Equal(t, "2024-02-10", d.AddDays(-4).String())
	assert.Equal(t, -1, d.Compare(d.AddDays(1)))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(wrapper{Date: MustParseDate("2024-03-05")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-05"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-03-05T18:30:00Z"}`), &w))
	assert.Equal(t, "2024-03-05", w.Date.String())

	require.NoError(t, json.Unmarshal([]byte(`{"date":""}`), &w))
	assert.True(t, w.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"yesterday"}`), &w))
}
