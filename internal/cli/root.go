package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/huddle/internal/backup"
	"github.com/julianstephens/huddle/internal/config"
	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/roster"
	"github.com/julianstephens/huddle/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Roster *roster.Roster
	Config *config.Config

	// Out and In default to the process's stdout and stdin
	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Confirm prints prompt followed by "Continue? [y/N]: " and reports whether
// the answer was yes. End of input counts as no.
func (c *Context) Confirm(prompt string) (bool, error) {
	if prompt != "" {
		c.Println(prompt)
	}
	c.Printf("Continue? [y/N]: ")

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// SupportsBackups reports whether the store is a SQLite database
func (c *Context) SupportsBackups() bool {
	_, ok := c.Store.(storage.DBProvider)
	return ok
}

// PerformAutomaticBackup snapshots a SQLite store and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if !c.SupportsBackups() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
