package submissions

import (
	"strings"

	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/models"
)

type ListCmd struct {
	ShowIDs bool `help:"Show submission IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	subs := ctx.Roster.List()
	if len(subs) == 0 {
		ctx.Println("No submissions yet.")
		return nil
	}

	ctx.Printf("Participants (%d):\n\n", len(subs))
	for _, sub := range subs {
		line := "  " + sub.Name
		if c.ShowIDs {
			line += "  [" + sub.ID + "]"
		}
		ctx.Println(line)
		ctx.Printf("    %s\n", formatSlots(sub.Availability))
	}
	return nil
}

func formatSlots(slots []models.TimeSlot) string {
	if len(slots) == 0 {
		return "(no availability)"
	}
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = slot.String()
	}
	return strings.Join(parts, ", ")
}
