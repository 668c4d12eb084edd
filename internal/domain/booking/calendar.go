package booking

import "time"

// MonthGrid lays out a Sunday-first month: zero values pad the first week,
// followed by every day of the month at midnight.
func MonthGrid(month time.Time) []time.Time {
	loc := month.Location()
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	days := make([]time.Time, int(first.Weekday()), int(first.Weekday())+last.Day())
	for d := 1; d <= last.Day(); d++ {
		days = append(days, time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, loc))
	}
	return days
}
