package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rpggio/weekgrid/internal/domain/timeblock"
	"github.com/rpggio/weekgrid/internal/interaction"
)

type editorMode int

const (
	editorCreate editorMode = iota
	editorEdit
)

// editor is the title prompt shown for new and existing blocks. It is modal:
// mouse input is ignored while it is open.
type editor struct {
	mode  editorMode
	input textinput.Model
	start time.Time
	end   time.Time
	block timeblock.TimeBlock
}

func newTitleInput(value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 120
	ti.Width = 40
	ti.SetValue(value)
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m *Model) openCreateEditor(in interaction.OpenCreateEditor) tea.Cmd {
	m.editor = &editor{
		mode:  editorCreate,
		input: newTitleInput(""),
		start: in.Start,
		end:   in.End,
	}
	return m.editor.input.Focus()
}

func (m *Model) openEditor(block timeblock.TimeBlock) tea.Cmd {
	m.editor = &editor{
		mode:  editorEdit,
		input: newTitleInput(block.Title),
		start: block.StartTime,
		end:   block.EndTime,
		block: block,
	}
	return m.editor.input.Focus()
}

func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	e := m.editor
	switch msg.String() {
	case "esc":
		m.editor = nil
		return nil

	case "enter":
		m.editor = nil
		title := strings.TrimSpace(e.input.Value())
		if title == "" {
			return nil
		}
		if e.mode == editorCreate {
			return m.createBlock(title, e.start, e.end)
		}
		if title == e.block.Title {
			return nil
		}
		return m.renameBlock(e.block.ID, title)

	case "ctrl+d":
		if e.mode == editorEdit {
			m.editor = nil
			return m.deleteBlock(e.block.ID, e.block.Title)
		}
		return nil
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}
