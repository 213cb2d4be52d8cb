package calendar

import "time"

// Part identifies which region of a block a pointer is over.
type Part int

const (
	PartBody Part = iota
	PartTop
	PartBottom
)

func (p Part) String() string {
	switch p {
	case PartTop:
		return "top"
	case PartBottom:
		return "bottom"
	default:
		return "body"
	}
}

// Span is the placement-relevant part of a block.
type Span struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Rect is a block's on-screen rectangle. Bottom is exclusive.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Hit is the result of a successful hit test.
type Hit struct {
	ID   string
	Part Part
	// Rect is the rectangle of the hit block, so callers can compute grab
	// offsets from it.
	Rect Rect
}

// Place computes the rectangle of a span within the visible week. It reports
// false when the span starts outside the visible days.
func (g Grid) Place(weekStart time.Time, s Span) (Rect, bool) {
	start := s.Start.In(weekStart.Location())
	end := s.End.In(weekStart.Location())

	day := DayIndex(weekStart, start)
	if day < 0 || day >= g.Days {
		return Rect{}, false
	}

	top := g.YForTime(start.Hour(), start.Minute())
	var bottom float64
	if DayIndex(weekStart, end) != day {
		bottom = g.YForTime(g.EndHour, 0)
	} else {
		bottom = g.YForTime(end.Hour(), end.Minute())
	}
	floor := g.YForTime(g.StartHour, 0)
	ceiling := g.YForTime(g.EndHour, 0)
	if top < floor {
		top = floor
	}
	if bottom > ceiling {
		bottom = ceiling
	}
	if bottom <= top {
		return Rect{}, false
	}

	left := g.XForDay(day)
	return Rect{Left: left, Top: top, Right: left + g.ColumnWidth(), Bottom: bottom}, true
}

// HitTest finds the block under a pointer position. Later spans take
// precedence over earlier ones, matching draw order. Blocks shorter than
// three edge heights expose only their body.
func (g Grid) HitTest(weekStart time.Time, spans []Span, x, y, edge float64) (Hit, bool) {
	for i := len(spans) - 1; i >= 0; i-- {
		r, ok := g.Place(weekStart, spans[i])
		if !ok {
			continue
		}
		if x < r.Left || x >= r.Right || y < r.Top || y >= r.Bottom {
			continue
		}

		part := PartBody
		if edge > 0 && r.Bottom-r.Top >= 3*edge {
			switch {
			case y < r.Top+edge:
				part = PartTop
			case y >= r.Bottom-edge:
				part = PartBottom
			}
		}
		return Hit{ID: spans[i].ID, Part: part, Rect: r}, true
	}
	return Hit{}, false
}
