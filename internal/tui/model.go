package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/huddle/internal/constants"
	"github.com/julianstephens/huddle/internal/roster"
	"github.com/julianstephens/huddle/internal/tui/components/entry"
	"github.com/julianstephens/huddle/internal/tui/components/results"
	"github.com/julianstephens/huddle/internal/validation"
)

const (
	// EmptyNameMessage is shown when a participant saves without a name
	EmptyNameMessage = "Please enter your name before saving."
	// SaveFailedMessage is shown under the banner when the store rejected the write
	SaveFailedMessage = "Your availability could not be saved."
)

type NameFormModel struct {
	Name string
}

type ConfirmFormModel struct {
	Confirmed bool
}

type Model struct {
	roster        *roster.Roster
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	entry         entry.Model
	results       results.Model
	form          *huh.Form
	nameForm      *NameFormModel
	confirmForm   *ConfirmFormModel
	savedDelay    time.Duration
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(r *roster.Roster, savedDelay time.Duration) Model {
	if savedDelay <= 0 {
		savedDelay = constants.SavedResetDelay
	}

	m := Model{
		roster:     r,
		state:      constants.StateEntry,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		entry:      entry.New(),
		results:    results.New(0, 0),
		savedDelay: savedDelay,
	}
	m.reload()

	return m
}

func (m Model) State() constants.SessionState {
	return m.state
}

func (m Model) Entry() entry.Model {
	return m.entry
}

func (m Model) Results() results.Model {
	return m.results
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateEntry:
		keys = append(keys, m.keys.Toggle, m.keys.Name, m.keys.Save)
	case constants.StateResults:
		keys = append(keys, m.keys.Reload, m.keys.Clear)
	case constants.StateEditName, constants.StateConfirmClear:
		keys = []key.Binding{m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case constants.StateEntry:
		actions = []key.Binding{m.keys.Toggle, m.keys.Name, m.keys.Save, m.keys.Clear}
	case constants.StateResults:
		actions = []key.Binding{m.keys.Reload, m.keys.Clear}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload re-reads the store into the results view
func (m *Model) reload() {
	m.results.SetSubmissions(m.roster.List())
}

func (m *Model) openNameForm() tea.Cmd {
	m.nameForm = &NameFormModel{Name: m.entry.Name()}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your Name").
				Value(&m.nameForm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return validation.ErrEmptyName
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
	m.previousState = m.state
	m.state = constants.StateEditName
	return m.form.Init()
}

func (m *Model) openConfirmClear() tea.Cmd {
	m.confirmForm = &ConfirmFormModel{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(constants.ClearConfirmMessage).
				Affirmative("Clear").
				Negative("Cancel").
				Value(&m.confirmForm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
	m.previousState = m.state
	m.state = constants.StateConfirmClear
	return m.form.Init()
}

// applyName sets the participant name from the completed name form
func (m *Model) applyName(name string) {
	m.entry.SetName(name)
	m.closeForm()
}

// applyClear empties the store when confirmed and returns to the previous tab
func (m *Model) applyClear(confirmed bool) {
	if confirmed {
		if m.roster.Clear() {
			m.status = "All submissions cleared."
		} else {
			m.status = "Could not clear submissions."
		}
		m.reload()
	}
	m.closeForm()
}

func (m *Model) closeForm() {
	m.form = nil
	m.nameForm = nil
	m.confirmForm = nil
	m.state = m.previousState
}

// save submits the current entry. An empty name keeps the form open with an
// error; anything else shows the saved banner, with a notice when the store
// rejected the write.
func (m *Model) save() tea.Cmd {
	if m.entry.Phase() != entry.PhaseEditing {
		return nil
	}

	res, err := m.roster.Submit(m.entry.Name(), m.entry.Selected())
	if err != nil {
		if errors.Is(err, validation.ErrEmptyName) {
			m.entry.SetError(EmptyNameMessage)
		} else {
			m.entry.SetError(err.Error())
		}
		return nil
	}

	notice := ""
	if !res.Persisted {
		notice = SaveFailedMessage
	}
	m.status = ""
	m.reload()
	return m.entry.MarkSaved(m.savedDelay, notice)
}
