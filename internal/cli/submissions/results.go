package submissions

import (
	"fmt"
	"strings"

	"github.com/julianstephens/huddle/internal/aggregator"
	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/grid"
)

type ResultsCmd struct {
	Grid bool `help:"Also print the weekly grid with the number of free participants per hour."`
}

func (c *ResultsCmd) Run(ctx *cli.Context) error {
	subs := ctx.Roster.List()
	if len(subs) == 0 {
		ctx.Println("No submissions yet.")
		return nil
	}

	result := aggregator.Aggregate(subs)

	ctx.Printf("Participants (%d):", len(subs))
	for _, sub := range subs {
		ctx.Printf(" %s", sub.Name)
	}
	ctx.Println()
	ctx.Println()

	ctx.Println("Best Available Slots:")
	if !result.HasCommonSlot() {
		ctx.Println("  No time slots where all participants are available.")
	} else {
		for _, slot := range result.Intersection {
			ctx.Printf("  %s\n", slot.String())
		}
	}

	if c.Grid {
		ctx.Println()
		ctx.Printf("%s", RenderGrid(result))
	}
	return nil
}

// RenderGrid draws the weekly grid as text. A cell shows ALL when everyone is
// free, the number of free participants otherwise, and a dot when nobody is.
func RenderGrid(result aggregator.Result) string {
	var b strings.Builder

	b.WriteString("       ")
	for _, day := range grid.Days {
		fmt.Fprintf(&b, " %-4s", day[:3])
	}
	b.WriteString("\n")

	for row, t := range grid.Times {
		fmt.Fprintf(&b, "%-7s", t)
		for col := range grid.Days {
			cell, ok := result.Cell(grid.Slot(col, row))
			switch {
			case !ok:
				b.WriteString(" .   ")
			case cell.AllFree:
				b.WriteString(" ALL ")
			default:
				fmt.Fprintf(&b, " %-4d", len(cell.Occupants))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
