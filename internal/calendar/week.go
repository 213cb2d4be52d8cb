package calendar

import (
	"math"
	"time"
)

// WeekStart returns midnight of the first day of the week containing t.
func WeekStart(t time.Time, first time.Weekday) time.Time {
	back := (int(t.Weekday()) - int(first) + 7) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-back, 0, 0, 0, 0, t.Location())
}

// At returns the wall-clock time of a coordinate relative to weekStart.
func At(weekStart time.Time, c Coordinate) time.Time {
	return AtClock(weekStart, c.Day, c.Hour, c.Minute)
}

// AtClock returns hour:minute on the day that is day days after weekStart.
func AtClock(weekStart time.Time, day, hour, minute int) time.Time {
	y, m, d := weekStart.Date()
	return time.Date(y, m, d+day, hour, minute, 0, 0, weekStart.Location())
}

// DayIndex returns the number of calendar days between weekStart and t,
// measured in weekStart's location.
func DayIndex(weekStart, t time.Time) int {
	ty, tm, td := t.In(weekStart.Location()).Date()
	wy, wm, wd := weekStart.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(wy, wm, wd, 0, 0, 0, 0, time.UTC)
	return int(math.Round(a.Sub(b).Hours() / 24))
}

// DayBoundary returns hour:00 on the calendar day of t.
func DayBoundary(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}
