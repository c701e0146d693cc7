package report

import (
	"fmt"
	"time"
)

// DateLayout is the canonical textual form for calendar dates, matching the
// DATE columns in storage. All range filtering and grouping compares dates in
// this form, never raw timestamps, so report boundaries cannot shift with the
// viewer's timezone.
const DateLayout = "2006-01-02"

// Date is a timezone-independent calendar date. The zero value is invalid;
// construct dates with NewDate, ParseDate, or DateOf.
type Date struct {
	t time.Time // midnight UTC
}

// NewDate returns the calendar date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// DateOf returns the calendar date of the given instant in its own location.
// The wall-clock day is taken as-is; the instant is not converted to UTC
// first, so "today" means today on the caller's clock.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(DateLayout) }

// Label formats the date as a short chart label, e.g. "2 Jan".
func (d Date) Label() string { return d.t.Format("2 Jan") }

// Time returns the date as midnight UTC, for passing to DATE query parameters.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether d is the zero (invalid) date.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date n calendar days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of calendar days from d to other.
// It is negative when other precedes d.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// Range is an inclusive calendar-day interval.
type Range struct {
	Start Date
	End   Date
}

// NewRange returns the range [start, end]. Start and end may be equal for a
// single-day range.
func NewRange(start, end Date) (Range, error) {
	if start.IsZero() || end.IsZero() {
		return Range{}, fmt.Errorf("range bounds must be set")
	}
	if end.Before(start) {
		return Range{}, fmt.Errorf("range end %s precedes start %s", end, start)
	}
	return Range{Start: start, End: end}, nil
}

// SingleDay returns the one-day range covering d.
func SingleDay(d Date) Range { return Range{Start: d, End: d} }

// LastNDays returns the n-day range ending at (and including) end.
func LastNDays(end Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{Start: end.AddDays(-(n - 1)), End: end}
}

// Days returns the inclusive length of the range in calendar days.
func (r Range) Days() int { return r.Start.DaysUntil(r.End) + 1 }

// Contains reports whether d falls inside the range.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Previous returns the immediately preceding range of equal length. The
// previous range ends the day before r starts, so the two never overlap, and
// a single-day range compares against the single preceding day.
func (r Range) Previous() Range {
	end := r.Start.AddDays(-1)
	return Range{Start: end.AddDays(-(r.Days() - 1)), End: end}
}

// Dates returns every calendar date in the range, ascending.
func (r Range) Dates() []Date {
	days := r.Days()
	out := make([]Date, 0, days)
	for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}
