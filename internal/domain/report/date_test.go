package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", d.String())
	assert.Equal(t, "15 Jun", d.Label())

	_, err = ParseDate("15/06/2025")
	require.Error(t, err)
}

func TestDateOf_UsesWallClockDay(t *testing.T) {
	// 23:30 in UTC+7 is the next day in UTC; the calendar date must follow
	// the local clock, not the UTC conversion.
	loc := time.FixedZone("WIB", 7*3600)
	d := DateOf(time.Date(2025, 6, 15, 23, 30, 0, 0, loc))
	assert.Equal(t, "2025-06-15", d.String())
}

func TestDateArithmetic(t *testing.T) {
	d := NewDate(2025, time.March, 1)
	assert.Equal(t, "2025-02-28", d.AddDays(-1).String())
	assert.Equal(t, "2025-03-31", d.AddDays(30).String())
	assert.Equal(t, 30, d.DaysUntil(d.AddDays(30)))
	assert.Equal(t, -1, d.DaysUntil(d.AddDays(-1)))
}

func TestRangePrevious_EqualLength(t *testing.T) {
	tests := []struct {
		name      string
		start     Date
		end       Date
		wantStart string
		wantEnd   string
	}{
		{
			name:      "thirty day window",
			start:     NewDate(2025, time.June, 1),
			end:       NewDate(2025, time.June, 30),
			wantStart: "2025-05-02",
			wantEnd:   "2025-05-31",
		},
		{
			name:      "single day compares against the preceding day",
			start:     NewDate(2025, time.June, 15),
			end:       NewDate(2025, time.June, 15),
			wantStart: "2025-06-14",
			wantEnd:   "2025-06-14",
		},
		{
			name:      "week crossing a month boundary",
			start:     NewDate(2025, time.July, 2),
			end:       NewDate(2025, time.July, 8),
			wantStart: "2025-06-24",
			wantEnd:   "2025-07-01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := NewRange(tt.start, tt.end)
			require.NoError(t, err)

			prev := rng.Previous()
			assert.Equal(t, tt.wantStart, prev.Start.String())
			assert.Equal(t, tt.wantEnd, prev.End.String())
			assert.Equal(t, rng.Days(), prev.Days(), "previous period must have equal length")
			assert.True(t, prev.End.Before(rng.Start), "periods must not overlap")
		})
	}
}

func TestNewRange_RejectsInvertedBounds(t *testing.T) {
	_, err := NewRange(NewDate(2025, time.June, 2), NewDate(2025, time.June, 1))
	require.Error(t, err)
}

func TestLastNDays(t *testing.T) {
	rng := LastNDays(NewDate(2025, time.June, 15), 7)
	assert.Equal(t, "2025-06-09", rng.Start.String())
	assert.Equal(t, "2025-06-15", rng.End.String())
	assert.Equal(t, 7, rng.Days())
	assert.Len(t, rng.Dates(), 7)
}
