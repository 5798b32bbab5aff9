// Package results is the organizer view: who is free in each hour and which
// hours are free for everyone.
package results

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/huddle/internal/aggregator"
	"github.com/julianstephens/huddle/internal/constants"
	"github.com/julianstephens/huddle/internal/grid"
	"github.com/julianstephens/huddle/internal/models"
)

// Palette holds the participant colors, assigned by submission index
var Palette = [constants.PaletteSize]lipgloss.Color{
	"#BFDBFE", // blue
	"#BBF7D0", // green
	"#FEF08A", // yellow
	"#FBCFE8", // pink
	"#E9D5FF", // purple
	"#C7D2FE", // indigo
	"#99F6E4", // teal
	"#FED7AA", // orange
}

const cellWidth = 6

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("240"))

	allFreeStyle = cellStyle.
			Background(lipgloss.Color("#10B981")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	bestStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3B82F6")).
			PaddingLeft(1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// ColorFor returns the palette color for the submission at index
func ColorFor(index int) lipgloss.Color {
	return Palette[index%len(Palette)]
}

type Model struct {
	viewport    viewport.Model
	submissions []models.Submission
	result      aggregator.Result
	colors      map[string]lipgloss.Color
	width       int
	height      int
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		colors:   make(map[string]lipgloss.Color),
		result:   aggregator.Aggregate(nil),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.render()
}

// SetSubmissions replaces the data and recomputes the aggregate
func (m *Model) SetSubmissions(subs []models.Submission) {
	m.submissions = subs
	m.result = aggregator.Aggregate(subs)
	m.colors = make(map[string]lipgloss.Color, len(subs))
	for i, sub := range subs {
		m.colors[sub.Name] = ColorFor(i)
	}
	m.render()
}

func (m Model) Result() aggregator.Result {
	return m.result
}

func (m Model) Submissions() []models.Submission {
	return m.submissions
}

func (m Model) View() string {
	if len(m.submissions) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("No submissions yet"),
			"",
			mutedStyle.Render("Participants can add their availability in the Availability tab."),
		)
	}
	return m.viewport.View()
}

// render lays out the legend, the best slots and the grid into the viewport
func (m *Model) render() {
	header := lipgloss.JoinVertical(lipgloss.Left,
		m.renderLegend(),
		"",
		m.renderBest(),
		"",
	)

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height, 1)
	m.viewport.SetContent(header + "\n" + m.renderGrid())
}

func (m Model) renderLegend() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Participants (%d)", len(m.submissions))))
	b.WriteString("\n")
	for i, sub := range m.submissions {
		chip := lipgloss.NewStyle().
			Background(ColorFor(i)).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1).
			Render(sub.Name)
		b.WriteString(chip)
		if !sub.HasAvailability() {
			b.WriteString(mutedStyle.Render(" (no availability)"))
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (m Model) renderBest() string {
	var lines []string
	lines = append(lines, titleStyle.Render("Best Available Slots"))
	if !m.result.HasCommonSlot() {
		lines = append(lines, mutedStyle.Render("No time slots where all participants are available."))
	} else {
		for _, slot := range m.result.Intersection {
			lines = append(lines, slot.String())
		}
	}
	return bestStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderGrid() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-7s", "")))
	for _, day := range grid.Days {
		b.WriteString(headerStyle.Width(cellWidth).Align(lipgloss.Center).Render(day[:3]))
	}
	b.WriteString("\n")

	for row, t := range grid.Times {
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-7s", t)))
		for col := range grid.Days {
			b.WriteString(m.renderCell(grid.Slot(col, row)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCell(slot models.TimeSlot) string {
	cell, ok := m.result.Cell(slot)
	switch {
	case !ok:
		return cellStyle.Render("·")
	case cell.AllFree:
		return allFreeStyle.Render("ALL")
	}

	// Leave room for the cell padding; overflow collapses into a count
	limit := cellWidth - 1
	var parts []string
	for i, name := range cell.Occupants {
		if i == limit-1 && len(cell.Occupants) > limit {
			parts = append(parts, mutedStyle.Render("+"))
			break
		}
		parts = append(parts, lipgloss.NewStyle().
			Background(m.colors[name]).
			Foreground(lipgloss.Color("0")).
			Render(Initial(name)))
	}
	return cellStyle.Render(strings.Join(parts, ""))
}

// Initial returns the upper-cased first letter of name, or "?" for an empty name
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}
