package submissions

import (
	"fmt"

	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/constants"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(constants.ClearConfirmMessage)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Clear cancelled.")
			return nil
		}
	}

	if !ctx.Roster.Clear() {
		return fmt.Errorf("failed to clear submissions in %s", ctx.Store.GetConfigPath())
	}
	ctx.Println("✓ All submissions cleared.")
	return nil
}
