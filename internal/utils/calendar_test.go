package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddCalendarMonth(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid month keeps day",
			in:   time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "jan 31 clamps to feb 28",
			in:   time.Date(2023, time.January, 31, 9, 0, 0, 0, time.UTC),
			want: time.Date(2023, time.February, 28, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "jan 31 clamps to feb 29 in leap year",
			in:   time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC),
			want: time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "march 31 clamps to april 30",
			in:   time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into next year",
			in:   time.Date(2026, time.December, 10, 23, 59, 59, 0, time.UTC),
			want: time.Date(2027, time.January, 10, 23, 59, 59, 0, time.UTC),
		},
		{
			name: "last day surviving into a longer month",
			in:   time.Date(2026, time.February, 28, 12, 0, 0, 0, time.UTC),
			want: time.Date(2026, time.March, 28, 12, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddCalendarMonth(tc.in)
			assert.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}

func TestAddCalendarMonthPreservesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2026, time.May, 31, 8, 15, 0, 0, loc)
	got := AddCalendarMonth(in)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 30, got.Day())
	assert.Equal(t, time.June, got.Month())
}
