// Package tui is a terminal week view. Mouse and key events are fed into the
// interaction machine; the intents it emits open an inline editor or run as
// commands against the block store.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/weekgrid/internal/calendar"
	"github.com/rpggio/weekgrid/internal/dispatch"
	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/interaction"
)

const (
	gutterWidth = 6
	headerRows  = 2
	minColumn   = 8
	days        = 7
	edgeRows    = 1
)

// Store is the block storage the view reads and writes.
type Store interface {
	ListRange(ctx context.Context, userID, workspaceID string, from, to time.Time) ([]timeblock.TimeBlock, error)
	Create(ctx context.Context, userID string, req timeblock.CreateRequest) (*timeblock.TimeBlock, error)
	Update(ctx context.Context, userID string, req timeblock.UpdateRequest) (*timeblock.TimeBlock, error)
	Duplicate(ctx context.Context, userID string, req timeblock.DuplicateRequest) (*timeblock.TimeBlock, error)
	Delete(ctx context.Context, userID, id string) error
}

// Options configure a Model.
type Options struct {
	UserID        string
	WorkspaceID   string
	WorkspaceName string

	StartHour    int
	EndHour      int
	SnapMinutes  int
	FirstWeekday time.Weekday
	// ClickThreshold is measured in cells. Zero means one cell.
	ClickThreshold float64

	Now    func() time.Time
	Logger *slog.Logger
}

type blocksLoadedMsg struct {
	seq    int
	blocks []timeblock.TimeBlock
	err    error
}

type mutationDoneMsg struct {
	what string
	err  error
}

// inbox collects intents emitted while a message is being handled.
type inbox struct {
	intents []interaction.Intent
}

func (b *inbox) Emit(in interaction.Intent) {
	b.intents = append(b.intents, in)
}

func (b *inbox) drain() []interaction.Intent {
	out := b.intents
	b.intents = nil
	return out
}

// Model is the bubbletea model for the week view.
type Model struct {
	ctx        context.Context
	store      Store
	dispatcher *dispatch.Dispatcher
	opts       Options
	logger     *slog.Logger

	machine  *interaction.Machine
	modifier *interaction.ModifierTracker
	inbox    *inbox

	weekStart time.Time
	blocks    []timeblock.TimeBlock
	loadSeq   int

	// pointerShift is added to pointer rows while a session snaps to the
	// bottom of the cell under the pointer (creating, bottom-edge resize).
	pointerShift float64

	editor *editor
	status string
	width  int
	height int
	colW   int
	styles styles
}

// New creates a week view showing the week that contains opts.Now().
func New(ctx context.Context, store Store, opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ClickThreshold <= 0 {
		opts.ClickThreshold = 1
	}

	m := &Model{
		ctx:        ctx,
		store:      store,
		dispatcher: dispatch.New(store, opts.UserID, opts.Logger),
		opts:       opts,
		logger:     opts.Logger,
		modifier:   &interaction.ModifierTracker{},
		inbox:      &inbox{},
		weekStart:  calendar.WeekStart(opts.Now(), opts.FirstWeekday),
		colW:       minColumn,
		styles:     defaultStyles(),
	}
	m.machine = interaction.NewMachine(interaction.Config{
		Grid:           m.grid(),
		WeekStart:      m.weekStart,
		ClickThreshold: opts.ClickThreshold,
	}, timeblock.NewSet(nil), m.inbox, m.modifier.Pressed)
	return m
}

// Init loads the first week.
func (m *Model) Init() tea.Cmd {
	return m.load()
}

// WeekStart returns the first day of the visible week.
func (m *Model) WeekStart() time.Time {
	return m.weekStart
}

// Blocks returns the blocks of the visible week as last loaded.
func (m *Model) Blocks() []timeblock.TimeBlock {
	return m.blocks
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()

	case blocksLoadedMsg:
		if msg.seq != m.loadSeq {
			break
		}
		if msg.err != nil {
			m.status = "load failed: " + msg.err.Error()
			break
		}
		m.blocks = msg.blocks
		m.machine.SetBlocks(timeblock.NewSet(msg.blocks))

	case mutationDoneMsg:
		if msg.err != nil {
			m.status = msg.what + " failed: " + msg.err.Error()
		} else {
			m.status = msg.what
		}
		cmds = append(cmds, m.load())

	case tea.KeyMsg:
		if m.editor != nil {
			cmds = append(cmds, m.updateEditor(msg))
			break
		}
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		if m.editor == nil {
			m.handleMouse(msg)
		}
	}

	cmds = append(cmds, m.handleIntents()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		if m.machine.KeyDown(interaction.KeyEscape) {
			m.pointerShift = 0
		}
	case "[":
		return m.setWeek(m.weekStart.AddDate(0, 0, -7))
	case "]":
		return m.setWeek(m.weekStart.AddDate(0, 0, 7))
	case "t":
		return m.setWeek(calendar.WeekStart(m.opts.Now(), m.opts.FirstWeekday))
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.modifier.Set(msg.Ctrl)
	x, y := float64(msg.X), float64(msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pointerDown(x, y)
		}
	case tea.MouseActionMotion:
		// A buttonless motion mid-drag means the release landed outside
		// the terminal and was never reported.
		if msg.Button == tea.MouseButtonNone && m.machine.Active() {
			m.machine.PointerLeave()
			m.modifier.Reset()
			m.pointerShift = 0
			return
		}
		m.machine.PointerMove(x, y+m.pointerShift)
	case tea.MouseActionRelease:
		if m.machine.Active() {
			m.machine.PointerMove(x, y+m.pointerShift)
			m.machine.PointerUp()
		}
		m.pointerShift = 0
	}
}

func (m *Model) pointerDown(x, y float64) {
	m.pointerShift = 0
	hit, ok := m.grid().HitTest(m.weekStart, m.spans(), x, y, edgeRows)
	if !ok {
		m.machine.PointerDown(x, y)
		if m.machine.Active() {
			m.pointerShift = 1
		}
		return
	}

	switch hit.Part {
	case calendar.PartTop:
		m.machine.EdgePointerDown(hit.ID, interaction.EdgeTop, interaction.Point{X: x, Y: y})
	case calendar.PartBottom:
		m.pointerShift = 1
		m.machine.EdgePointerDown(hit.ID, interaction.EdgeBottom, interaction.Point{X: x, Y: y + 1})
	default:
		m.machine.BlockPointerDown(hit.ID,
			interaction.Point{X: x, Y: y},
			interaction.Point{X: x - hit.Rect.Left, Y: y - hit.Rect.Top})
	}
}

func (m *Model) handleIntents() []tea.Cmd {
	var cmds []tea.Cmd
	for _, in := range m.inbox.drain() {
		switch in := in.(type) {
		case interaction.OpenCreateEditor:
			cmds = append(cmds, m.openCreateEditor(in))
		case interaction.OpenEditor:
			cmds = append(cmds, m.openEditor(in.Block))
		default:
			if dispatch.IsMutation(in) {
				cmds = append(cmds, m.apply(in))
			}
		}
	}
	return cmds
}

func (m *Model) setWeek(start time.Time) tea.Cmd {
	m.weekStart = start
	m.machine.SetWeekStart(start)
	m.pointerShift = 0
	m.blocks = nil
	m.machine.SetBlocks(timeblock.NewSet(nil))
	return m.load()
}

func (m *Model) resize() {
	colW := (m.width - gutterWidth) / days
	if colW < minColumn {
		colW = minColumn
	}
	m.colW = colW
	m.machine.SetGrid(m.grid())
}

func (m *Model) grid() calendar.Grid {
	snap := m.opts.SnapMinutes
	return calendar.Grid{
		Left:        gutterWidth,
		Top:         headerRows,
		Width:       float64(m.colW * days),
		StartHour:   m.opts.StartHour,
		EndHour:     m.opts.EndHour,
		SnapMinutes: snap,
		Days:        days,
		HourHeight:  float64(60 / max(snap, 1)),
	}
}

func (m *Model) spans() []calendar.Span {
	spans := make([]calendar.Span, len(m.blocks))
	for i, b := range m.blocks {
		spans[i] = calendar.Span{ID: b.ID, Start: b.StartTime, End: b.EndTime}
	}
	return spans
}
