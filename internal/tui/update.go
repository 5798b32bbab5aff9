package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/huddle/internal/constants"
	"github.com/julianstephens/huddle/internal/tui/components/entry"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case entry.ResetMsg:
		var cmd tea.Cmd
		m.entry, cmd = m.entry.Update(msg)
		return m, cmd
	}

	if m.state == constants.StateEditName || m.state == constants.StateConfirmClear {
		return m, m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == constants.StateResults {
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.switchTab(1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.switchTab(-1)
		return m, nil
	}

	switch m.state {
	case constants.StateEntry:
		return m, m.updateEntry(keyMsg)
	case constants.StateResults:
		return m, m.updateResults(keyMsg)
	}

	return m, nil
}

func (m *Model) switchTab(step int) {
	m.state = constants.SessionState((int(m.state) + step + constants.TabCount) % constants.TabCount)
	m.status = ""
	if m.state == constants.StateResults {
		m.reload()
	}
}

func (m *Model) updateEntry(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.entry.MoveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.entry.MoveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.entry.MoveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.entry.MoveCursor(1, 0)
	case key.Matches(msg, m.keys.Toggle):
		m.entry.Toggle()
	case key.Matches(msg, m.keys.Name):
		if m.entry.Phase() == entry.PhaseEditing {
			return m.openNameForm()
		}
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Clear):
		return m.openConfirmClear()
	}
	return nil
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Reload):
		m.reload()
		m.status = "Reloaded."
		return nil
	case key.Matches(msg, m.keys.Clear):
		return m.openConfirmClear()
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Cancel) {
		m.closeForm()
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		switch m.state {
		case constants.StateEditName:
			m.applyName(m.nameForm.Name)
		case constants.StateConfirmClear:
			m.applyClear(m.confirmForm.Confirmed)
		}
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

// resize hands the space left after the tabs, status and help to the views
func (m *Model) resize() {
	chrome := 3 + lipgloss.Height(m.help.View(m))
	height := max(m.height-chrome, 1)
	m.entry.SetSize(m.width, height)
	m.results.SetSize(m.width, height)
}
