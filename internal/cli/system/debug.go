package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/huddle/internal/aggregator"
	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/config"
	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/models"
)

type DebugCmd struct {
	DBPath      *DebugDBPathCmd      `cmd:"" name:"db-path" help:"Show store path."`
	Dump        *DebugDumpCmd        `cmd:"" help:"Dump all submissions as JSON."`
	DumpResults *DebugDumpResultsCmd `cmd:"" name:"dump-results" help:"Dump the aggregated results as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	backend := "sqlite"
	if config.IsJSONPath(ctx.Store.GetConfigPath()) {
		backend = "json"
	}
	return printJSON(ctx, map[string]string{
		"path":    ctx.Store.GetConfigPath(),
		"backend": backend,
		"log":     logger.Path(),
	})
}

type DebugDumpCmd struct{}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	subs, err := ctx.Store.ListAll()
	if err != nil {
		return fmt.Errorf("failed to read submissions: %w", err)
	}
	return printJSON(ctx, subs)
}

type DebugDumpResultsCmd struct{}

type cellDump struct {
	models.TimeSlot
	Occupants []string `json:"occupants"`
	AllFree   bool     `json:"allFree"`
}

type resultsDump struct {
	Participants []string          `json:"participants"`
	Threshold    int               `json:"threshold"`
	Intersection []models.TimeSlot `json:"intersection"`
	Cells        []cellDump        `json:"cells"`
}

func (cmd *DebugDumpResultsCmd) Run(ctx *cli.Context) error {
	subs, err := ctx.Store.ListAll()
	if err != nil {
		return fmt.Errorf("failed to read submissions: %w", err)
	}
	result := aggregator.Aggregate(subs)

	dump := resultsDump{
		Participants: result.Participants,
		Threshold:    result.Threshold,
		Intersection: result.Intersection,
		Cells:        []cellDump{},
	}
	for _, slot := range result.SortedCells() {
		cell, _ := result.Cell(slot)
		dump.Cells = append(dump.Cells, cellDump{TimeSlot: slot, Occupants: cell.Occupants, AllFree: cell.AllFree})
	}
	return printJSON(ctx, dump)
}

func printJSON(ctx *cli.Context, v interface{}) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
