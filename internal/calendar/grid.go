package calendar

import (
	"errors"
	"math"
)

// ErrInvalidGrid indicates a grid configuration that cannot resolve positions.
var ErrInvalidGrid = errors.New("invalid grid configuration")

// Coordinate is a position on the weekly grid.
type Coordinate struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Grid describes the pixel geometry of a weekly calendar surface.
//
// Left, Top and Width locate the day columns in pointer space. TopOffset is
// extra space between Top and the first hour row (a header, for example).
// Visible hours are [StartHour, EndHour).
type Grid struct {
	Left        float64
	Top         float64
	Width       float64
	TopOffset   float64
	StartHour   int
	EndHour     int
	SnapMinutes int
	Days        int
	HourHeight  float64
}

// Validate reports whether the grid can be used for resolution.
func (g Grid) Validate() error {
	switch {
	case g.Days <= 0:
		return ErrInvalidGrid
	case g.Width <= 0 || g.HourHeight <= 0:
		return ErrInvalidGrid
	case g.StartHour < 0 || g.EndHour > 24 || g.EndHour <= g.StartHour:
		return ErrInvalidGrid
	case g.SnapMinutes <= 0 || 60%g.SnapMinutes != 0:
		return ErrInvalidGrid
	}
	return nil
}

// ColumnWidth returns the width of one day column.
func (g Grid) ColumnWidth() float64 {
	return g.Width / float64(g.Days)
}

// Resolve converts a pointer position into a grid coordinate. It reports
// false when the position lies outside the day columns or the visible hours.
func (g Grid) Resolve(x, y float64) (Coordinate, bool) {
	if g.Validate() != nil {
		return Coordinate{}, false
	}

	offsetX := x - g.Left
	if offsetX < 0 {
		return Coordinate{}, false
	}
	day := int(math.Floor(offsetX / g.ColumnWidth()))
	if day < 0 || day >= g.Days {
		return Coordinate{}, false
	}

	offsetY := y - g.Top - g.TopOffset
	if offsetY < 0 {
		return Coordinate{}, false
	}
	minutes := offsetY / g.HourHeight * 60
	hour := g.StartHour + int(math.Floor(minutes/60))

	within := minutes - math.Floor(minutes/60)*60
	snap := float64(g.SnapMinutes)
	minute := int(math.Round(within/snap) * snap)
	if minute >= 60 {
		hour++
		minute = 0
	}

	// EndHour:00 is the bottom edge; anything past it is off the grid.
	if hour < g.StartHour || hour > g.EndHour || (hour == g.EndHour && minute > 0) {
		return Coordinate{}, false
	}

	return Coordinate{Day: day, Hour: hour, Minute: minute}, true
}

// XForDay returns the left edge of a day column.
func (g Grid) XForDay(day int) float64 {
	return g.Left + float64(day)*g.ColumnWidth()
}

// YForTime returns the vertical position of a wall-clock time. Times before
// StartHour produce positions above the first row.
func (g Grid) YForTime(hour, minute int) float64 {
	elapsed := float64((hour-g.StartHour)*60 + minute)
	return g.Top + g.TopOffset + elapsed/60*g.HourHeight
}

// Rows returns the number of snap intervals in the visible range.
func (g Grid) Rows() int {
	if g.SnapMinutes <= 0 {
		return 0
	}
	return (g.EndHour - g.StartHour) * 60 / g.SnapMinutes
}
