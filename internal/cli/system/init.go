package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/huddle/internal/cli"
	"github.com/julianstephens/huddle/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing store before initialization."`
	Source string `help:"Path of another huddle store (SQLite or JSON) to copy submissions from." type:"path"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Source != "" {
		absPath, _ := filepath.Abs(path)
		absSource, _ := filepath.Abs(c.Source)
		if absPath == absSource {
			return fmt.Errorf("source and destination are the same: %s", path)
		}
	}

	if c.Force {
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			ctx.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	} else if _, err := os.Stat(path); err == nil && c.Source == "" {
		if err := ctx.Store.Init(); err != nil {
			return err
		}
		ctx.Printf("huddle storage already initialized at: %s\n", path)
		ctx.Println("Use --force to start over.")
		return nil
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized huddle storage at: %s\n", path)

	if c.Source != "" {
		ctx.Printf("Copying submissions from: %s\n", c.Source)
		count, err := copySubmissions(ctx.Store, c.Source)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Printf("Copied %d submission(s)\n", count)
	}

	return nil
}

// copySubmissions upserts every submission from the store at sourcePath into
// dst, keeping names, IDs and order
func copySubmissions(dst storage.Provider, sourcePath string) (int, error) {
	src := storage.New(sourcePath, nil)
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	subs, err := src.ListAll()
	if err != nil {
		return 0, fmt.Errorf("failed to read source submissions: %w", err)
	}
	for _, sub := range subs {
		if err := dst.Upsert(sub); err != nil {
			return 0, fmt.Errorf("failed to copy submission for %s: %w", sub.Name, err)
		}
	}
	return len(subs), nil
}
