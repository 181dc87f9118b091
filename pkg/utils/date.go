package utils

import "time"

// NthWeekday returns the nth occurrence (1-based) of the given weekday in a month.
func NthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(weekday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+(n-1)*7)
}

// ThirdWednesday returns the third Wednesday of the month, the monthly
// contract settlement anchor.
func ThirdWednesday(year int, month time.Month) time.Time {
	return NthWeekday(year, month, time.Wednesday, 3)
}

// ThirdThursday returns the third Thursday of the month, the anchor for the
// start of the following contract month.
func ThirdThursday(year int, month time.Month) time.Time {
	return NthWeekday(year, month, time.Thursday, 3)
}

// PrevMonth returns the calendar month immediately before the given one,
// rolling the year back across January.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// SameDate reports whether two timestamps fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Date truncates a timestamp to midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
