package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/constants"
	"github.com/julianstephens/huddle/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Snapshot the store before the session starts editing it
	ctx.PerformAutomaticBackup()

	delay := constants.SavedResetDelay
	if ctx.Config != nil {
		delay = ctx.Config.SavedResetDelay
	}

	p := tea.NewProgram(tui.NewModel(ctx.Roster, delay), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
