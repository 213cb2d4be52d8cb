package interaction

import (
	"time"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
)

// Intent is a request emitted by the machine when a session commits. The
// machine never waits for an intent to be carried out.
type Intent interface {
	intent()
}

// OpenCreateEditor asks the editor to start a new block for a range.
type OpenCreateEditor struct {
	Start     time.Time
	End       time.Time
	DayOfWeek int
}

// OpenEditor asks the editor to show an existing block.
type OpenEditor struct {
	Block timeblock.TimeBlock
}

// Move asks the store to reschedule a block.
type Move struct {
	BlockID string
	Start   time.Time
	End     time.Time
	Title   string
	Color   string
}

// Duplicate asks the store to copy a block to a new range.
type Duplicate struct {
	BlockID string
	Start   time.Time
	End     time.Time
}

// Resize asks the store to change one edge of a block.
type Resize struct {
	BlockID string
	Edge    Edge
	Time    time.Time
}

func (OpenCreateEditor) intent() {}
func (OpenEditor) intent()       {}
func (Move) intent()             {}
func (Duplicate) intent()        {}
func (Resize) intent()           {}

// Emitter receives intents.
type Emitter interface {
	Emit(Intent)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Intent)

// Emit calls f.
func (f EmitterFunc) Emit(in Intent) { f(in) }

// BlockLookup resolves block IDs against the current block set.
type BlockLookup interface {
	Lookup(id string) (timeblock.TimeBlock, bool)
}
