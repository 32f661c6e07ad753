package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the only accepted textual form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day without a time component. It is always stored at
// midnight UTC so that two Dates for the same day compare equal.
type Date time.Time

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day on which t occurs in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// Today returns the current calendar day in the local time zone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for literals known to be valid. It panics otherwise.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return time.Time(d).Before(time.Time(o))
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return time.Time(d).After(time.Time(o))
}

// Equal reports whether d and o are the same calendar day.
func (d Date) Equal(o Date) bool {
	return time.Time(d).Equal(time.Time(o))
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	return time.Time(d).Compare(time.Time(o))
}

// Between reports whether d falls within [start, end], inclusive on both ends.
func (d Date) Between(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

// AddMonths returns the date n months after d (n may be negative).
func (d Date) AddMonths(n int) Date {
	return Date(time.Time(d).AddDate(0, n, 0))
}

// StartOfMonth returns the first day of d's month.
func (d Date) StartOfMonth() Date {
	year, month, _ := time.Time(d).Date()
	return NewDate(year, month, 1)
}

// EndOfMonth returns the last day of d's month.
func (d Date) EndOfMonth() Date {
	return d.StartOfMonth().AddMonths(1).AddDays(-1)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// Both YYYY-MM-DD and RFC 3339 timestamps are accepted; only the day is kept.
func (d *Date) UnmarshalText(data []byte) error {
	value := strings.TrimSpace(string(data))
	if value == "" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(value)
	if err == nil {
		*d = parsed
		return nil
	}

	t, tsErr := time.Parse(time.RFC3339, value)
	if tsErr != nil {
		return err
	}
	*d = DateOf(t)
	return nil
}
