package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/huddle/internal/constants"
)

var tabNames = [constants.TabCount]string{"Availability", "Results"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateEntry:
		content = m.entry.View()
	case constants.StateResults:
		content = m.results.View()
	case constants.StateEditName, constants.StateConfirmClear:
		content = m.form.View()
	}

	parts := []string{m.viewTabs(), "", content}
	if m.status != "" {
		parts = append(parts, m.viewStatus())
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= constants.TabCount {
		active = m.previousState
	}

	tabs := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if constants.SessionState(i) == active {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if strings.HasPrefix(m.status, "Could not") {
		return warningStyle.Render("⚠ " + m.status)
	}
	return statusStyle.Render(m.status)
}
