// Package dates centralizes the calendar math used by the summary rollups.
//
// Business rules: weeks run Monday to Sunday, the month is a hard boundary
// (a week straddling two months is clipped), and week/month ranges never
// extend past today.
package dates

import "time"

// Range is an inclusive calendar-date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// StartOfMonth returns the first day of d's month, at midnight.
func StartOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// EndOfMonth returns the last day of d's month, at midnight.
func EndOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
}

// MondayOfWeek returns the Monday of d's natural week, at midnight.
func MondayOfWeek(d time.Time) time.Time {
	day := truncateToDay(d)
	diff := int(time.Monday - day.Weekday())
	if day.Weekday() == time.Sunday {
		diff = -6
	}
	return day.AddDate(0, 0, diff)
}

// SundayOfWeek returns the Sunday of d's natural week, at midnight.
func SundayOfWeek(d time.Time) time.Time {
	return MondayOfWeek(d).AddDate(0, 0, 6)
}

// CurrentWeekRange returns the Monday–Sunday week containing today, clipped
// to today's month and never extending past today. Weeks at a month edge are
// therefore partial.
func CurrentWeekRange(today time.Time) Range {
	day := truncateToDay(today)

	start := MondayOfWeek(day)
	if som := StartOfMonth(day); start.Before(som) {
		start = som
	}

	end := SundayOfWeek(day)
	if eom := EndOfMonth(day); end.After(eom) {
		end = eom
	} else if end.After(day) {
		end = day
	}

	return Range{Start: start, End: end}
}

// CurrentMonthRange returns the range from the first of today's month
// through today.
func CurrentMonthRange(today time.Time) Range {
	day := truncateToDay(today)
	return Range{Start: StartOfMonth(day), End: day}
}

// TodayRange returns the single-day range for today.
func TodayRange(today time.Time) Range {
	day := truncateToDay(today)
	return Range{Start: day, End: day}
}

// DayBounds returns the half-open [00:00:00, next midnight) window of d's
// calendar day, for "did X start on this date" queries.
func DayBounds(d time.Time) (start, end time.Time) {
	start = truncateToDay(d)
	return start, start.AddDate(0, 0, 1)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func truncateToDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}
