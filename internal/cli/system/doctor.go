package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/huddle/internal/backup"
	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/storage/sqlite"
	"github.com/julianstephens/huddle/internal/validation"
)

type DoctorCmd struct{}

type checkStatus int

const (
	statusOK checkStatus = iota
	statusFail
	statusWarn
	statusSkipped
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, status checkStatus, detail string) {
		switch status {
		case statusOK:
			ctx.Printf("✓ %s: OK\n", name)
		case statusFail:
			hasError = true
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %s\n", detail)
		case statusWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %s\n", detail)
		case statusSkipped:
			ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, detail)
		}
	}

	reachable := true
	if err := ctx.Store.Load(); err != nil {
		reachable = false
		report("Store reachable", statusFail, err.Error())
	} else {
		report("Store reachable", statusOK, "")
	}

	sqlStore, isSQLite := ctx.Store.(*sqlite.Store)
	switch {
	case !reachable:
		report("Schema version", statusSkipped, "store not reachable")
	case !isSQLite:
		report("Schema version", statusSkipped, "JSON store has no schema")
	default:
		current, latest, err := sqlStore.SchemaVersion()
		switch {
		case err != nil:
			report("Schema version", statusFail, err.Error())
		case current > latest:
			report("Schema version", statusFail, fmt.Sprintf("database schema version (%d) is newer than supported version (%d)", current, latest))
		case current < latest:
			report("Schema version", statusFail, fmt.Sprintf("%d migration(s) pending, run 'huddle init'", latest-current))
		default:
			report("Schema version", statusOK, "")
		}
	}

	if isSQLite {
		if err := checkBackupsPresent(ctx); err != nil {
			report("Backups present", statusWarn, err.Error())
		} else {
			report("Backups present", statusOK, "")
		}
	} else {
		report("Backups present", statusSkipped, "backups require a SQLite store")
	}

	if reachable {
		if err := checkSubmissions(ctx); err != nil {
			report("Submission integrity", statusFail, err.Error())
		} else {
			report("Submission integrity", statusOK, "")
		}
		if warning := checkSlots(ctx); warning != "" {
			report("Slots on grid", statusWarn, warning)
		} else {
			report("Slots on grid", statusOK, "")
		}
	} else {
		report("Submission integrity", statusSkipped, "store not reachable")
		report("Slots on grid", statusSkipped, "store not reachable")
	}

	ctx.Println()
	if hasError {
		ctx.Println("Some checks failed. Please review the errors above.")
		return errors.New("diagnostics failed")
	}
	ctx.Println("All checks passed!")
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.GetBackupDir())
	}
	return nil
}

// checkSubmissions reads the store directly so read errors surface here
// instead of being absorbed by the roster
func checkSubmissions(ctx *cli.Context) error {
	subs, err := ctx.Store.ListAll()
	if err != nil {
		return err
	}

	v := validation.New(false)
	seen := make(map[string]bool, len(subs))
	var problems []string
	for i, sub := range subs {
		if sub.ID == "" {
			problems = append(problems, fmt.Sprintf("submission %d (%s) has no ID", i+1, sub.Name))
		}
		if err := v.ValidateSubmission(sub); err != nil {
			problems = append(problems, fmt.Sprintf("submission %d (%s): %v", i+1, sub.Name, err))
		}
		if seen[sub.Name] {
			problems = append(problems, fmt.Sprintf("name %q is stored more than once", sub.Name))
		}
		seen[sub.Name] = true
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func checkSlots(ctx *cli.Context) string {
	subs, err := ctx.Store.ListAll()
	if err != nil {
		return ""
	}

	v := validation.New(false)
	var warnings []string
	for _, sub := range subs {
		result := v.CheckSlots(sub.Availability)
		for _, c := range result.Conflicts {
			warnings = append(warnings, fmt.Sprintf("%s: %s", sub.Name, c.Description))
		}
	}
	return strings.Join(warnings, "\n   ")
}
