package tui

import (
	"context"
	"sort"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
)

var monday = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(day, hour, minute int) time.Time {
	return monday.AddDate(0, 0, day).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fakeStore struct {
	blocks     map[string]timeblock.TimeBlock
	ranges     []time.Time
	created    []timeblock.CreateRequest
	updated    []timeblock.UpdateRequest
	duplicated []timeblock.DuplicateRequest
	deleted    []string
}

func newFakeStore(blocks ...timeblock.TimeBlock) *fakeStore {
	s := &fakeStore{blocks: map[string]timeblock.TimeBlock{}}
	for _, b := range blocks {
		s.blocks[b.ID] = b
	}
	return s
}

func (s *fakeStore) ListRange(_ context.Context, _, _ string, from, to time.Time) ([]timeblock.TimeBlock, error) {
	s.ranges = append(s.ranges, from)
	var out []timeblock.TimeBlock
	for _, b := range s.blocks {
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, _ string, req timeblock.CreateRequest) (*timeblock.TimeBlock, error) {
	s.created = append(s.created, req)
	b := timeblock.TimeBlock{ID: "new", Title: req.Title, StartTime: req.StartTime, EndTime: req.EndTime, Color: "#888888"}
	s.blocks[b.ID] = b
	return &b, nil
}

func (s *fakeStore) Update(_ context.Context, _ string, req timeblock.UpdateRequest) (*timeblock.TimeBlock, error) {
	s.updated = append(s.updated, req)
	b := s.blocks[req.ID]
	if req.StartTime != nil {
		b.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		b.EndTime = *req.EndTime
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	s.blocks[req.ID] = b
	return &b, nil
}

func (s *fakeStore) Duplicate(_ context.Context, _ string, req timeblock.DuplicateRequest) (*timeblock.TimeBlock, error) {
	s.duplicated = append(s.duplicated, req)
	return &timeblock.TimeBlock{ID: "copy"}, nil
}

func (s *fakeStore) Delete(_ context.Context, _ string, id string) error {
	s.deleted = append(s.deleted, id)
	delete(s.blocks, id)
	return nil
}

// Tuesday 09:00-11:00. With a 76-column terminal each day is 10 cells wide
// and each 15-minute row is one line, so the block covers x 16-25, y 6-13.
var tuesdayBlock = timeblock.TimeBlock{
	ID:        "b1",
	Title:     "Deep work",
	Color:     "#3366cc",
	StartTime: at(1, 9, 0),
	EndTime:   at(1, 11, 0),
}

func newTestModel(t *testing.T, store *fakeStore) *Model {
	t.Helper()
	m := New(context.Background(), store, Options{
		UserID:        "user1",
		WorkspaceID:   "ws1",
		WorkspaceName: "Week",
		StartHour:     8,
		EndHour:       18,
		SnapMinutes:   15,
		FirstWeekday:  time.Monday,
		Now:           func() time.Time { return at(2, 12, 0) },
	})
	update(m, tea.WindowSizeMsg{Width: 76, Height: 60})
	run(m, m.Init())
	return m
}

// update delivers msg and runs every command it produces to completion.
func update(m *Model, msg tea.Msg) {
	_, cmd := m.Update(msg)
	run(m, cmd)
}

func run(m *Model, cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case blocksLoadedMsg, mutationDoneMsg:
			_, follow := m.Update(msg)
			queue = append(queue, follow)
		}
	}
}

func press(m *Model, x, y int, ctrl bool) {
	update(m, tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func motion(m *Model, x, y int, ctrl bool) {
	update(m, tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func release(m *Model, x, y int, ctrl bool) {
	update(m, tea.MouseMsg{X: x, Y: y, Ctrl: ctrl, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func key(m *Model, k tea.KeyType) {
	update(m, tea.KeyMsg{Type: k})
}

func typeText(m *Model, s string) {
	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestModel_LoadsVisibleWeek(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	require.True(t, m.WeekStart().Equal(monday))
	require.Len(t, m.Blocks(), 1)
	require.Equal(t, []time.Time{monday}, store.ranges)

	view := m.View()
	require.Contains(t, view, "Tue 02")
	require.Contains(t, view, "Deep work")
	require.Contains(t, view, "09:00 ")
}

func TestModel_DragEmptyCellCreates(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 9, 6, false)
	motion(m, 9, 9, false)
	release(m, 9, 9, false)

	require.NotNil(t, m.editor)
	require.Equal(t, editorCreate, m.editor.mode)
	require.Contains(t, m.View(), "New block 09:00-10:00")

	typeText(m, "Plan")
	key(m, tea.KeyEnter)

	require.Nil(t, m.editor)
	require.Len(t, store.created, 1)
	req := store.created[0]
	require.Equal(t, "Plan", req.Title)
	require.Equal(t, "ws1", req.WorkspaceID)
	require.True(t, req.StartTime.Equal(at(0, 9, 0)))
	require.True(t, req.EndTime.Equal(at(0, 10, 0)))
	require.Len(t, m.Blocks(), 2)
}

func TestModel_CreateWithEmptyTitleIsDropped(t *testing.T) {
	store := newFakeStore()
	m := newTestModel(t, store)

	press(m, 9, 6, false)
	release(m, 9, 6, false)
	require.NotNil(t, m.editor)

	key(m, tea.KeyEnter)
	require.Nil(t, m.editor)
	require.Empty(t, store.created)
}

func TestModel_DragBlockMoves(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	motion(m, 39, 12, false)
	release(m, 39, 12, false)

	require.Nil(t, m.editor)
	require.Len(t, store.updated, 1)
	req := store.updated[0]
	require.Equal(t, "b1", req.ID)
	require.True(t, req.StartTime.Equal(at(3, 10, 0)))
	require.True(t, req.EndTime.Equal(at(3, 12, 0)))
	require.Equal(t, "Deep work", *req.Title)
	require.Equal(t, "#3366cc", *req.Color)
	require.Contains(t, m.status, "moved")
}

func TestModel_CtrlDragDuplicates(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	motion(m, 39, 12, true)
	release(m, 39, 12, true)

	require.Empty(t, store.updated)
	require.Len(t, store.duplicated, 1)
	req := store.duplicated[0]
	require.Equal(t, "b1", req.ID)
	require.True(t, req.StartTime.Equal(at(3, 10, 0)))
	require.True(t, req.EndTime.Equal(at(3, 12, 0)))
}

func TestModel_DragBottomEdgeResizes(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 13, false)
	motion(m, 19, 15, false)
	release(m, 19, 15, false)

	require.Len(t, store.updated, 1)
	req := store.updated[0]
	require.Nil(t, req.StartTime)
	require.NotNil(t, req.EndTime)
	require.True(t, req.EndTime.Equal(at(1, 11, 30)))
}

func TestModel_DragTopEdgeResizes(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 6, false)
	motion(m, 19, 4, false)
	release(m, 19, 4, false)

	require.Len(t, store.updated, 1)
	req := store.updated[0]
	require.Nil(t, req.EndTime)
	require.NotNil(t, req.StartTime)
	require.True(t, req.StartTime.Equal(at(1, 8, 30)))
}

func TestModel_ClickBlockOpensEditor(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	release(m, 19, 8, false)

	require.NotNil(t, m.editor)
	require.Equal(t, editorEdit, m.editor.mode)
	require.Empty(t, store.updated)

	typeText(m, "!")
	key(m, tea.KeyEnter)

	require.Len(t, store.updated, 1)
	require.Equal(t, "Deep work!", *store.updated[0].Title)
	require.Nil(t, store.updated[0].StartTime)
}

func TestModel_EditorDeletes(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	release(m, 19, 8, false)
	key(m, tea.KeyCtrlD)

	require.Nil(t, m.editor)
	require.Equal(t, []string{"b1"}, store.deleted)
	require.Empty(t, m.Blocks())
}

func TestModel_EditorIgnoresMouse(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	release(m, 19, 8, false)
	require.NotNil(t, m.editor)

	press(m, 9, 6, false)
	release(m, 9, 6, false)
	require.Equal(t, editorEdit, m.editor.mode)

	key(m, tea.KeyEsc)
	require.Nil(t, m.editor)
	require.Empty(t, store.updated)
}

func TestModel_EscapeCancelsDrag(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	motion(m, 39, 12, false)
	key(m, tea.KeyEsc)
	release(m, 39, 12, false)

	require.Nil(t, m.editor)
	require.Empty(t, store.updated)
	require.Empty(t, store.duplicated)
}

func TestModel_LostReleaseCancelsDrag(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 9, 6, false)
	motion(m, 9, 9, false)
	update(m, tea.MouseMsg{X: 9, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	require.False(t, m.machine.Active())
	release(m, 9, 9, false)

	require.Nil(t, m.editor)
	require.Empty(t, store.created)

	press(m, 19, 8, true)
	motion(m, 39, 12, true)
	update(m, tea.MouseMsg{X: 39, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	release(m, 39, 12, false)

	require.Empty(t, store.updated)
	require.Empty(t, store.duplicated)
	require.False(t, m.modifier.Pressed())
}

func TestModel_HoverWithoutDragIsIgnored(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	update(m, tea.MouseMsg{X: 9, Y: 10, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	require.False(t, m.machine.Active())
	require.Nil(t, m.editor)
	require.Empty(t, store.created)
}

func TestModel_DragShowsProposal(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	press(m, 19, 8, false)
	motion(m, 39, 12, false)

	cells := m.layout()
	// Thursday 10:00 is row 8.
	require.Equal(t, cellProposal, cells[8][3].kind)
	require.Equal(t, "Deep work", cells[8][3].text)
	require.Equal(t, cellBlock, cells[4][1].kind)
}

func TestModel_WeekNavigation(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	require.True(t, m.WeekStart().Equal(monday.AddDate(0, 0, 7)))
	require.Empty(t, m.Blocks())

	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	require.True(t, m.WeekStart().Equal(monday.AddDate(0, 0, -7)))

	update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	require.True(t, m.WeekStart().Equal(monday))
	require.Len(t, m.Blocks(), 1)

	require.Equal(t, []time.Time{
		monday,
		monday.AddDate(0, 0, 7),
		monday,
		monday.AddDate(0, 0, -7),
		monday,
	}, store.ranges)
}

func TestModel_StaleLoadIgnored(t *testing.T) {
	store := newFakeStore(tuesdayBlock)
	m := newTestModel(t, store)

	stale := blocksLoadedMsg{seq: m.loadSeq - 1, blocks: nil}
	m.Update(stale)
	require.Len(t, m.Blocks(), 1)
}

func TestTextColor(t *testing.T) {
	require.Equal(t, "#000000", string(textColor("#ffee88")))
	require.Equal(t, "#ffffff", string(textColor("#1a237e")))
	require.Equal(t, "#ffffff", string(textColor("not a color")))
}

func TestFit(t *testing.T) {
	require.Equal(t, "abc       ", fit("abc", 10))
	require.Equal(t, "abcdefghi ", fit("abcdefghijkl", 10))
	require.Equal(t, "", fit("abc", 0))
}
