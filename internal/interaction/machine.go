// Package interaction turns pointer and keyboard events on a weekly grid into
// block intents: drag to create, drag to move, drag with Ctrl/Cmd to
// duplicate, drag an edge to resize, and click to open.
//
// A Machine is not safe for concurrent use. It is driven from the surface's
// event loop and never blocks; intents are handed to an Emitter and
// forgotten.
package interaction

import (
	"math"
	"time"

	"github.com/rpggio/weekgrid/internal/calendar"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
)

// DefaultClickThreshold is the pointer travel below which a block drag is
// treated as a click.
const DefaultClickThreshold = 5.0

// Config holds the geometry and week a Machine operates on.
type Config struct {
	Grid           calendar.Grid
	WeekStart      time.Time
	ClickThreshold float64
}

// Range is a proposed block interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Machine is the interaction state machine.
type Machine struct {
	cfg      Config
	blocks   BlockLookup
	emitter  Emitter
	modifier ModifierFunc

	session Session
	preview *calendar.Coordinate
}

// NewMachine creates an idle machine. A nil modifier reports "not pressed";
// a nil emitter drops intents.
func NewMachine(cfg Config, blocks BlockLookup, emitter Emitter, modifier ModifierFunc) *Machine {
	if cfg.ClickThreshold <= 0 {
		cfg.ClickThreshold = DefaultClickThreshold
	}
	if emitter == nil {
		emitter = EmitterFunc(func(Intent) {})
	}
	if modifier == nil {
		modifier = func() bool { return false }
	}
	return &Machine{
		cfg:      cfg,
		blocks:   blocks,
		emitter:  emitter,
		modifier: modifier,
		session:  Idle{},
	}
}

// Session returns the current session.
func (m *Machine) Session() Session {
	return m.session
}

// Active reports whether a session other than Idle is in progress.
func (m *Machine) Active() bool {
	return m.session.Kind() != KindIdle
}

// Preview returns the hovered coordinate. It is only tracked while idle.
func (m *Machine) Preview() (calendar.Coordinate, bool) {
	if m.preview == nil {
		return calendar.Coordinate{}, false
	}
	return *m.preview, true
}

// Config returns the machine's configuration.
func (m *Machine) Config() Config {
	return m.cfg
}

// SetBlocks replaces the block set used for lookups.
func (m *Machine) SetBlocks(blocks BlockLookup) {
	m.blocks = blocks
}

// SetGrid replaces the grid geometry, for example after the surface resizes.
func (m *Machine) SetGrid(g calendar.Grid) {
	m.cfg.Grid = g
}

// SetWeekStart moves the machine to another week. Any session in progress is
// dropped.
func (m *Machine) SetWeekStart(t time.Time) {
	m.cfg.WeekStart = t
	m.reset()
}

// PointerDown starts a create session on an empty grid cell. It is ignored
// while another session is active or when the position is off the grid.
func (m *Machine) PointerDown(x, y float64) {
	if m.Active() {
		return
	}
	c, ok := m.cfg.Grid.Resolve(x, y)
	if !ok {
		return
	}
	m.preview = nil
	m.session = Creating{Start: c, Current: c}
}

// BlockPointerDown starts a move session on a block body. grab is the
// pointer offset from the block's top-left corner.
func (m *Machine) BlockPointerDown(blockID string, at, grab Point) {
	if m.Active() {
		return
	}
	if _, ok := m.lookup(blockID); !ok {
		return
	}

	s := Moving{
		BlockID:   blockID,
		Grab:      grab,
		Last:      at,
		Duplicate: m.modifier(),
	}
	if c, ok := m.cfg.Grid.Resolve(at.X, at.Y-grab.Y); ok {
		s.Target, s.HasTarget = c, true
	}
	m.preview = nil
	m.session = s
}

// EdgePointerDown starts a resize session on a block edge.
func (m *Machine) EdgePointerDown(blockID string, edge Edge, at Point) {
	if m.Active() {
		return
	}
	block, ok := m.lookup(blockID)
	if !ok {
		return
	}

	s := Resizing{
		BlockID: blockID,
		Edge:    edge,
		Start:   block.StartTime,
		End:     block.EndTime,
	}
	if c, ok := m.cfg.Grid.Resolve(at.X, at.Y); ok {
		s.Target, s.HasTarget = c, true
	}
	m.preview = nil
	m.session = s
}

// PointerMove updates the preview while idle or the active session
// otherwise. Positions off the grid keep the last valid coordinate.
func (m *Machine) PointerMove(x, y float64) {
	switch s := m.session.(type) {
	case Idle:
		if c, ok := m.cfg.Grid.Resolve(x, y); ok {
			m.preview = &c
		} else {
			m.preview = nil
		}

	case Creating:
		if c, ok := m.cfg.Grid.Resolve(x, y); ok {
			s.Current = c
			m.session = s
		}

	case Moving:
		s.Travel += math.Hypot(x-s.Last.X, y-s.Last.Y)
		s.Last = Point{X: x, Y: y}
		s.Duplicate = m.modifier()
		if c, ok := m.cfg.Grid.Resolve(x, y-s.Grab.Y); ok {
			s.Target, s.HasTarget = c, true
		}
		m.session = s

	case Resizing:
		if c, ok := m.cfg.Grid.Resolve(x, y); ok {
			s.Target, s.HasTarget = c, true
			m.session = s
		}
	}
}

// PointerUp commits the active session and returns to idle.
func (m *Machine) PointerUp() {
	s := m.session
	m.session = Idle{}

	var in Intent
	switch s := s.(type) {
	case Creating:
		in = m.commitCreate(s)
	case Moving:
		in = m.commitMove(s)
	case Resizing:
		in = m.commitResize(s)
	}
	if in != nil {
		m.emitter.Emit(in)
	}
}

// PointerLeave abandons any session and clears the preview.
func (m *Machine) PointerLeave() {
	m.reset()
}

// KeyDown handles keys the machine cares about. Escape cancels the active
// session without emitting anything. It reports whether the key was used.
func (m *Machine) KeyDown(k Key) bool {
	if k == KeyEscape && m.Active() {
		m.session = Idle{}
		return true
	}
	return false
}

// Proposal returns the range the active session would commit right now, so
// a surface can draw it. It reports false when the session would commit
// nothing or only open an editor.
func (m *Machine) Proposal() (Range, bool) {
	switch s := m.session.(type) {
	case Creating:
		in := m.commitCreate(s)
		return Range{Start: in.Start, End: in.End}, true
	case Moving:
		if s.Travel < m.cfg.ClickThreshold {
			return Range{}, false
		}
		block, ok := m.lookup(s.BlockID)
		if !ok {
			return Range{}, false
		}
		return m.moveRange(s, block.Duration())
	case Resizing:
		return m.resizeRange(s)
	}
	return Range{}, false
}

func (m *Machine) reset() {
	m.session = Idle{}
	m.preview = nil
}

func (m *Machine) lookup(id string) (timeblock.TimeBlock, bool) {
	if m.blocks == nil {
		return timeblock.TimeBlock{}, false
	}
	return m.blocks.Lookup(id)
}
