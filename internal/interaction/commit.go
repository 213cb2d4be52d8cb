package interaction

import (
	"time"

	"github.com/rpggio/weekgrid/internal/calendar"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
)

func (m *Machine) commitCreate(s Creating) OpenCreateEditor {
	g := m.cfg.Grid
	first := g.StartHour * 60
	last := g.EndHour * 60

	start := m.clock(s.Start, first, last-g.SnapMinutes)
	end := m.clock(s.Current, first, last)
	if !end.After(start) {
		end = start.Add(time.Duration(g.SnapMinutes) * time.Minute)
	}
	return OpenCreateEditor{
		Start:     start,
		End:       end,
		DayOfWeek: timeblock.DayOfWeek(start),
	}
}

func (m *Machine) commitMove(s Moving) Intent {
	block, ok := m.lookup(s.BlockID)
	if !ok {
		return nil
	}
	if s.Travel < m.cfg.ClickThreshold {
		return OpenEditor{Block: block}
	}

	r, ok := m.moveRange(s, block.Duration())
	if !ok {
		return nil
	}
	if m.modifier() {
		return Duplicate{BlockID: block.ID, Start: r.Start, End: r.End}
	}
	return Move{
		BlockID: block.ID,
		Start:   r.Start,
		End:     r.End,
		Title:   block.Title,
		Color:   block.Color,
	}
}

func (m *Machine) commitResize(s Resizing) Intent {
	if _, ok := m.lookup(s.BlockID); !ok {
		return nil
	}
	r, ok := m.resizeRange(s)
	if !ok {
		return nil
	}
	at := r.End
	if s.Edge == EdgeTop {
		at = r.Start
	}
	return Resize{BlockID: s.BlockID, Edge: s.Edge, Time: at}
}

// moveRange places a block of duration d with its top edge at the session's
// target. A block that would run past the last visible hour is pulled back so
// it ends exactly there.
func (m *Machine) moveRange(s Moving, d time.Duration) (Range, bool) {
	if !s.HasTarget {
		return Range{}, false
	}
	g := m.cfg.Grid

	hour := max(s.Target.Hour, g.StartHour)
	start := calendar.AtClock(m.cfg.WeekStart, s.Target.Day, hour, s.Target.Minute)
	end := start.Add(d)
	if limit := calendar.DayBoundary(start, g.EndHour); end.After(limit) {
		overflow := end.Sub(limit)
		start = start.Add(-overflow)
		end = limit
	}
	return Range{Start: start, End: end}, true
}

// resizeRange moves one edge of the block to the target time on the block's
// own day. The other edge is unchanged.
func (m *Machine) resizeRange(s Resizing) (Range, bool) {
	if !s.HasTarget {
		return Range{}, false
	}
	g := m.cfg.Grid

	day := calendar.DayIndex(m.cfg.WeekStart, s.Start)
	hour := min(max(s.Target.Hour, g.StartHour), g.EndHour)
	at := calendar.AtClock(m.cfg.WeekStart, day, hour, s.Target.Minute)
	if at.Before(calendar.DayBoundary(at, g.StartHour)) || at.After(calendar.DayBoundary(at, g.EndHour)) {
		return Range{}, false
	}

	r := Range{Start: s.Start, End: s.End}
	if s.Edge == EdgeTop {
		r.Start = at
	} else {
		r.End = at
	}
	if !r.End.After(r.Start) {
		return Range{}, false
	}
	return r, true
}

// clock converts a coordinate to a time with its minute-of-day clamped to
// [lo, hi].
func (m *Machine) clock(c calendar.Coordinate, lo, hi int) time.Time {
	minutes := min(max(c.Hour*60+c.Minute, lo), hi)
	return calendar.AtClock(m.cfg.WeekStart, c.Day, minutes/60, minutes%60)
}
