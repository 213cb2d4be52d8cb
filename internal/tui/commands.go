package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/interaction"
)

// load fetches the visible week. Results of superseded loads are dropped.
func (m *Model) load() tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	from := m.weekStart
	to := from.AddDate(0, 0, days)
	ctx, store, opts := m.ctx, m.store, m.opts

	return func() tea.Msg {
		blocks, err := store.ListRange(ctx, opts.UserID, opts.WorkspaceID, from, to)
		return blocksLoadedMsg{seq: seq, blocks: blocks, err: err}
	}
}

func (m *Model) apply(in interaction.Intent) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return mutationDoneMsg{what: describe(in), err: d.Apply(ctx, in)}
	}
}

func (m *Model) createBlock(title string, start, end time.Time) tea.Cmd {
	ctx, store, opts := m.ctx, m.store, m.opts
	return func() tea.Msg {
		_, err := store.Create(ctx, opts.UserID, timeblock.CreateRequest{
			WorkspaceID: opts.WorkspaceID,
			Title:       title,
			StartTime:   start,
			EndTime:     end,
		})
		return mutationDoneMsg{what: fmt.Sprintf("created %q", title), err: err}
	}
}

func (m *Model) renameBlock(id, title string) tea.Cmd {
	ctx, store, opts := m.ctx, m.store, m.opts
	return func() tea.Msg {
		_, err := store.Update(ctx, opts.UserID, timeblock.UpdateRequest{ID: id, Title: &title})
		return mutationDoneMsg{what: fmt.Sprintf("renamed to %q", title), err: err}
	}
}

func (m *Model) deleteBlock(id, title string) tea.Cmd {
	ctx, store, opts := m.ctx, m.store, m.opts
	return func() tea.Msg {
		err := store.Delete(ctx, opts.UserID, id)
		return mutationDoneMsg{what: fmt.Sprintf("deleted %q", title), err: err}
	}
}

func describe(in interaction.Intent) string {
	switch in := in.(type) {
	case interaction.Move:
		return fmt.Sprintf("moved %q to %s", in.Title, in.Start.Format("Mon 15:04"))
	case interaction.Duplicate:
		return "duplicated to " + in.Start.Format("Mon 15:04")
	case interaction.Resize:
		return fmt.Sprintf("resized %s edge to %s", in.Edge, in.Time.Format("15:04"))
	default:
		return fmt.Sprintf("%T", in)
	}
}
