// Package entry is the availability entry view: a weekly grid with a cursor
// where one participant marks the hours they are free.
package entry

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/huddle/internal/grid"
	"github.com/julianstephens/huddle/internal/models"
)

// Phase is the entry view's state: editing, or showing the saved banner
// until the reset timer fires.
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSaved
)

// ResetMsg is delivered when the saved banner expires. Seq identifies the
// save it belongs to so a stale timer cannot reset a newer form.
type ResetMsg struct {
	Seq int
}

const cellWidth = 5

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("240"))

	selectedStyle = cellStyle.
			Background(lipgloss.Color("#6366F1")).
			Foreground(lipgloss.Color("255"))

	cursorStyle = cellStyle.
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("205")).
			Bold(true)

	cursorSelectedStyle = selectedStyle.
				Foreground(lipgloss.Color("205")).
				Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	savedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("#10B981")).
			Bold(true).
			Padding(1, 4)
)

type Model struct {
	name     string
	selected map[models.TimeSlot]bool
	col      int
	row      int
	offset   int
	phase    Phase
	seq      int
	err      string
	notice   string
	width    int
	height   int
}

func New() Model {
	return Model{
		selected: make(map[models.TimeSlot]bool),
		row:      9,
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampOffset()
}

func (m Model) Name() string  { return m.name }
func (m Model) Phase() Phase  { return m.phase }
func (m Model) Error() string { return m.err }
func (m Model) Cursor() models.TimeSlot {
	return grid.Slot(m.col, m.row)
}

func (m *Model) SetName(name string) {
	m.name = strings.TrimSpace(name)
	m.err = ""
}

func (m *Model) SetError(msg string) {
	m.err = msg
}

// Selected returns the marked slots, day-major
func (m Model) Selected() []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(m.selected))
	for slot, on := range m.selected {
		if on {
			slots = append(slots, slot)
		}
	}
	grid.Sort(slots)
	return slots
}

func (m Model) IsSelected(slot models.TimeSlot) bool {
	return m.selected[slot]
}

// MoveCursor moves by the given columns and rows, stopping at the grid edges
func (m *Model) MoveCursor(dCol, dRow int) {
	if m.phase != PhaseEditing {
		return
	}
	m.col = min(max(m.col+dCol, 0), len(grid.Days)-1)
	m.row = min(max(m.row+dRow, 0), len(grid.Times)-1)
	m.clampOffset()
}

// Toggle flips the cell under the cursor
func (m *Model) Toggle() {
	if m.phase != PhaseEditing {
		return
	}
	slot := m.Cursor()
	if m.selected[slot] {
		delete(m.selected, slot)
	} else {
		m.selected[slot] = true
	}
}

// MarkSaved shows the saved banner and returns the command that resets the
// form after delay. notice, if set, is shown under the banner.
func (m *Model) MarkSaved(delay time.Duration, notice string) tea.Cmd {
	m.phase = PhaseSaved
	m.err = ""
	m.notice = notice
	m.seq++
	seq := m.seq
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ResetMsg{Seq: seq}
	})
}

// Reset clears the name and selection for the next participant
func (m *Model) Reset() {
	m.name = ""
	m.selected = make(map[models.TimeSlot]bool)
	m.phase = PhaseEditing
	m.err = ""
	m.notice = ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(ResetMsg); ok && msg.Seq == m.seq && m.phase == PhaseSaved {
		m.Reset()
	}
	return m, nil
}

func (m Model) visibleRows() int {
	if m.height <= 0 {
		return len(grid.Times)
	}
	// name line, blank, header, footer lines
	return min(max(m.height-6, 4), len(grid.Times))
}

func (m *Model) clampOffset() {
	rows := m.visibleRows()
	if m.row < m.offset {
		m.offset = m.row
	}
	if m.row >= m.offset+rows {
		m.offset = m.row - rows + 1
	}
	m.offset = min(max(m.offset, 0), len(grid.Times)-rows)
}

func (m Model) View() string {
	if m.phase == PhaseSaved {
		lines := []string{savedStyle.Render("Saved!"), ""}
		if m.notice != "" {
			lines = append(lines, errorStyle.Render(m.notice), "")
		}
		lines = append(lines, mutedStyle.Render("The form will reset for the next person."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	var b strings.Builder

	name := mutedStyle.Render("(not set, press n)")
	if m.name != "" {
		name = nameStyle.Render(m.name)
	}
	fmt.Fprintf(&b, "Name: %s    Selected: %d\n\n", name, len(m.Selected()))

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-7s", "")))
	for _, day := range grid.Days {
		b.WriteString(headerStyle.Width(cellWidth).Align(lipgloss.Center).Render(day[:3]))
	}
	b.WriteString("\n")

	rows := m.visibleRows()
	for row := m.offset; row < m.offset+rows; row++ {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-7s", grid.Times[row])))
		for col := range grid.Days {
			slot := grid.Slot(col, row)
			isCursor := col == m.col && row == m.row
			switch {
			case isCursor && m.selected[slot]:
				b.WriteString(cursorSelectedStyle.Render("[x]"))
			case isCursor:
				b.WriteString(cursorStyle.Render("[ ]"))
			case m.selected[slot]:
				b.WriteString(selectedStyle.Render("x"))
			default:
				b.WriteString(cellStyle.Render("·"))
			}
		}
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err))
	}

	return b.String()
}
