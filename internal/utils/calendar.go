package utils

import "time"

// AddCalendarMonth returns t moved one calendar month forward,
// clamping the day of month when the target month is shorter.
// Jan 31 becomes Feb 28 (Feb 29 in leap years), not Mar 2/3, which
// is what time.AddDate would produce through normalization.  The
// clock time and location are preserved.
func AddCalendarMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := daysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.  Day 0 of
// the following month normalizes to the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
