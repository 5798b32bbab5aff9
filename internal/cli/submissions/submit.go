package submissions

import (
	"fmt"

	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/grid"
)

type SubmitCmd struct {
	Name  string   `arg:"" help:"Participant name. Submitting again under the same name replaces the earlier submission."`
	Slots []string `name:"slot" short:"s" help:"Free hour as DAY@HOUR, e.g. mon@9 or Tuesday@14:00. Repeatable."`
}

func (c *SubmitCmd) Run(ctx *cli.Context) error {
	slots, err := grid.ParseSlots(c.Slots)
	if err != nil {
		return err
	}

	result, err := ctx.Roster.Submit(c.Name, slots)
	if err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}

	for _, conflict := range result.Warnings.Conflicts {
		ctx.Printf("⚠ %s\n", conflict.Description)
	}

	if !result.Persisted {
		ctx.Printf("⚠ Submission for %s could not be saved to %s\n", result.Submission.Name, ctx.Store.GetConfigPath())
		return nil
	}

	verb := "Saved"
	if result.Replaced {
		verb = "Replaced"
	}
	ctx.Printf("✓ %s availability for %s (%d slot(s))\n", verb, result.Submission.Name, len(result.Submission.Availability))
	return nil
}
