package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rpggio/weekgrid/internal/calendar"
	"github.com/rpggio/weekgrid/internal/interaction"
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellPreview
	cellBlock
	cellProposal
)

type cell struct {
	kind  cellKind
	text  string
	style lipgloss.Style
}

// View renders the week.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTitle())
	b.WriteByte('\n')
	b.WriteString(m.renderDayHeader())
	b.WriteByte('\n')

	cells := m.layout()
	for row := range cells {
		b.WriteString(m.renderGutter(row))
		for day := range cells[row] {
			c := cells[row][day]
			b.WriteString(c.style.Render(fit(c.text, m.colW)))
		}
		b.WriteByte('\n')
	}

	if m.editor != nil {
		b.WriteString(m.renderEditor())
	} else {
		b.WriteString(m.styles.help.Render("drag empty: new  drag block: move  ctrl+drag: copy  drag edge: resize  [ ]: week  t: today  q: quit"))
	}
	return b.String()
}

func (m *Model) renderTitle() string {
	end := m.weekStart.AddDate(0, 0, days-1)
	title := fmt.Sprintf("%s  %s - %s",
		m.opts.WorkspaceName,
		m.weekStart.Format("Jan 2"),
		end.Format("Jan 2, 2006"))
	out := m.styles.title.Render(strings.TrimSpace(title))
	if m.status != "" {
		out += "  " + m.styles.status.Render(m.status)
	}
	return out
}

func (m *Model) renderDayHeader() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))

	today := m.opts.Now().In(m.weekStart.Location())
	for day := 0; day < days; day++ {
		date := m.weekStart.AddDate(0, 0, day)
		style := m.styles.header
		if sameDay(date, today) {
			style = m.styles.today
		}
		b.WriteString(style.Render(fit(date.Format("Mon 02"), m.colW)))
	}
	return b.String()
}

func (m *Model) renderGutter(row int) string {
	snap := m.opts.SnapMinutes
	minutes := m.opts.StartHour*60 + row*snap
	if minutes%60 != 0 {
		return strings.Repeat(" ", gutterWidth)
	}
	return m.styles.gutter.Render(fmt.Sprintf("%02d:00 ", minutes/60))
}

func (m *Model) renderEditor() string {
	e := m.editor
	var heading, keys string
	if e.mode == editorCreate {
		heading = "New block " + m.formatRange(e.start, e.end)
		keys = "enter: save  esc: cancel"
	} else {
		heading = "Edit block " + m.formatRange(e.start, e.end)
		keys = "enter: save  ctrl+d: delete  esc: cancel"
	}
	return m.styles.editor.Render(heading + "\n" + e.input.View() + "\n" + m.styles.help.Render(keys))
}

// layout assigns every grid cell its content. Later blocks paint over
// earlier ones; the active proposal paints over everything.
func (m *Model) layout() [][]cell {
	g := m.grid()
	rows := g.Rows()
	cells := make([][]cell, rows)
	for row := range cells {
		cells[row] = make([]cell, days)
		for day := range cells[row] {
			text := ""
			if m.opts.SnapMinutes > 0 && (row*m.opts.SnapMinutes)%60 == 0 {
				text = "·"
			}
			cells[row][day] = cell{kind: cellEmpty, text: text, style: m.styles.hour}
		}
	}

	if c, ok := m.machine.Preview(); ok {
		if row, ok := m.rowOf(g, c.Hour, c.Minute); ok && c.Day < days {
			cells[row][c.Day] = cell{kind: cellPreview, style: m.styles.preview}
		}
	}

	for _, b := range m.blocks {
		r, ok := g.Place(m.weekStart, calendar.Span{ID: b.ID, Start: b.StartTime, End: b.EndTime})
		if !ok {
			continue
		}
		m.paint(cells, g, r, cellBlock, blockStyle(b.Color), b.Title, m.formatRange(b.StartTime, b.EndTime))
	}

	if p, ok := m.machine.Proposal(); ok {
		if r, ok := g.Place(m.weekStart, calendar.Span{Start: p.Start, End: p.End}); ok {
			m.paint(cells, g, r, cellProposal, m.styles.proposal, m.proposalTitle(), m.formatRange(p.Start, p.End))
		}
	}
	return cells
}

func (m *Model) paint(cells [][]cell, g calendar.Grid, r calendar.Rect, kind cellKind, style lipgloss.Style, lines ...string) {
	day := int((r.Left - g.Left) / g.ColumnWidth())
	first := int(r.Top - g.Top - g.TopOffset)
	last := int(math.Ceil(r.Bottom-g.Top-g.TopOffset)) - 1
	if day < 0 || day >= days {
		return
	}
	for row := max(first, 0); row <= last && row < len(cells); row++ {
		text := ""
		if i := row - first; i < len(lines) {
			text = lines[i]
		}
		cells[row][day] = cell{kind: kind, text: text, style: style}
	}
}

func (m *Model) proposalTitle() string {
	var id string
	switch s := m.machine.Session().(type) {
	case interaction.Moving:
		id = s.BlockID
		if s.Duplicate {
			return "+ copy"
		}
	case interaction.Resizing:
		id = s.BlockID
	default:
		return "+ new"
	}
	for _, b := range m.blocks {
		if b.ID == id {
			return b.Title
		}
	}
	return ""
}

func (m *Model) rowOf(g calendar.Grid, hour, minute int) (int, bool) {
	if g.SnapMinutes <= 0 {
		return 0, false
	}
	row := ((hour-g.StartHour)*60 + minute) / g.SnapMinutes
	if row < 0 || row >= g.Rows() {
		return 0, false
	}
	return row, true
}

// fit pads or truncates s to exactly w runes, keeping one trailing space as a
// column gap.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) > w-1 {
		r = r[:max(w-1, 0)]
	}
	return string(r) + strings.Repeat(" ", w-len(r))
}

func (m *Model) formatRange(start, end time.Time) string {
	loc := m.weekStart.Location()
	return start.In(loc).Format("15:04") + "-" + end.In(loc).Format("15:04")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
