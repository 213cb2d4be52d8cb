package interaction

import (
	"time"

	"github.com/rpggio/weekgrid/internal/calendar"
)

// Session is the active interaction. Exactly one variant is current at a
// time; Idle is the zero state.
type Session interface {
	Kind() Kind
	session()
}

// Kind names a session variant.
type Kind string

const (
	KindIdle           Kind = "idle"
	KindCreating       Kind = "creating"
	KindMoving         Kind = "moving"
	KindResizingTop    Kind = "resizing_top"
	KindResizingBottom Kind = "resizing_bottom"
)

// Point is a pointer position.
type Point struct {
	X float64
	Y float64
}

// Idle means no pointer interaction is in progress.
type Idle struct{}

// Creating is a drag across empty grid cells.
type Creating struct {
	Start   calendar.Coordinate
	Current calendar.Coordinate
}

// Moving is a drag of an existing block body.
type Moving struct {
	BlockID string
	// Grab is the pointer offset from the block's top-left corner.
	Grab Point
	// Last is the most recent pointer position.
	Last Point
	// Travel is the accumulated pointer distance since pointer-down.
	Travel float64
	// Target is the last valid coordinate of the block's top edge.
	Target    calendar.Coordinate
	HasTarget bool
	Duplicate bool
}

// Resizing is a drag of a block's top or bottom edge.
type Resizing struct {
	BlockID   string
	Edge      Edge
	Start     time.Time
	End       time.Time
	Target    calendar.Coordinate
	HasTarget bool
}

// Edge selects which end of a block is being resized.
type Edge string

const (
	EdgeTop    Edge = "top"
	EdgeBottom Edge = "bottom"
)

func (Idle) Kind() Kind     { return KindIdle }
func (Creating) Kind() Kind { return KindCreating }
func (Moving) Kind() Kind   { return KindMoving }

func (r Resizing) Kind() Kind {
	if r.Edge == EdgeTop {
		return KindResizingTop
	}
	return KindResizingBottom
}

func (Idle) session()     {}
func (Creating) session() {}
func (Moving) session()   {}
func (Resizing) session() {}
