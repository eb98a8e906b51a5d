package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRange(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC) // 01:30 11 марта по UTC+3

	start, end := DayRange(at, loc)

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 3, 12, 0, 0, 0, 0, loc), end)
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "Jan", ShortName(time.January))
	assert.Equal(t, "Sep", ShortName(time.September))
	assert.Equal(t, "Dec", ShortName(time.December))
	assert.Equal(t, "", ShortName(time.Month(13)))
}

func TestAddMonths_TableTests(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want time.Time
	}{
		{
			name: "обычный месяц",
			from: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "31 января в високосный год",
			from: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "31 января в обычный год",
			from: time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "переход через год",
			from: time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC),
			n:    3,
			want: time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "год",
			from: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			n:    12,
			want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.from, tt.n))
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-01", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-05-01T10:15:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 15, 0, 0, time.UTC), d)

	_, err = ParseDate("01/05/2024", time.UTC)
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2024, 3, 11, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), Date(at))
}
