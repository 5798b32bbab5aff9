package main

import (
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/cli/backups"
	"github.com/julianstephens/huddle/internal/cli/submissions"
	"github.com/julianstephens/huddle/internal/cli/system"
	"github.com/julianstephens/huddle/internal/config"
	"github.com/julianstephens/huddle/internal/constants"
	"github.com/julianstephens/huddle/internal/errors"
	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/roster"
	"github.com/julianstephens/huddle/internal/storage"
	"github.com/julianstephens/huddle/internal/validation"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path. A .json path uses a JSON file, anything else a SQLite database." type:"path" default:"${config_path}"`
	Verbose bool   `name:"debug" help:"Enable debug logging." default:"${debug}"`
	Strict  bool   `help:"Reject availability outside the weekly grid." default:"${strict}"`

	Tui     system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Submit  submissions.SubmitCmd  `cmd:"" help:"Submit or replace availability for a participant."`
	List    submissions.ListCmd    `cmd:"" help:"List all submissions."`
	Results submissions.ResultsCmd `cmd:"" help:"Show the aggregated availability."`
	Clear   submissions.ClearCmd   `cmd:"" help:"Remove every submission."`
	Init    system.InitCmd         `cmd:"" help:"Initialize huddle storage."`
	Doctor  system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Debug   system.DebugCmd        `cmd:"" help:"Debug commands for troubleshooting."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.Format(err))
		os.Exit(1)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Collect weekly availability and find the hours that work for everyone"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": cfg.ConfigPath,
			"debug":       strconv.FormatBool(cfg.Debug),
			"strict":      strconv.FormatBool(cfg.Strict),
		},
	)

	// Flags win over the environment
	storePath, err := config.ExpandPath(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	cfg.ConfigPath = storePath
	cfg.Debug = CLI.Verbose
	cfg.Strict = CLI.Strict

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		StorePath: cfg.ConfigPath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	var migrationFS fs.FS
	if cfg.MigrationsPath != "" {
		dir, err := config.ExpandPath(cfg.MigrationsPath)
		if err != nil {
			errors.Fatal(err)
		}
		migrationFS = os.DirFS(dir)
	}
	store := storage.New(cfg.ConfigPath, migrationFS)

	// init, doctor and backup manage loading themselves. Everything else
	// works on a loaded store, or on an empty one when it cannot be read.
	if managesOwnStore(ctx.Command()) {
		logger.Debug("Store left unopened", "command", ctx.Command())
	} else {
		store = storage.OpenOrEmpty(store)
	}

	appCtx := &cli.Context{
		Store:  store,
		Roster: roster.New(store, validation.New(cfg.Strict)),
		Config: cfg,
	}

	err = ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close store", "error", closeErr)
	}
	errors.Fatal(err)
}

func managesOwnStore(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "init", "doctor", "backup":
		return true
	}
	return false
}
