package storage

import (
	"errors"
	"io/fs"

	"github.com/julianstephens/huddle/internal/config"
	"github.com/julianstephens/huddle/internal/storage/sqlite"
)

// New selects the backend from the path: a .json file uses JSONStore, anything
// else is a SQLite database. migrationFS overrides the embedded SQLite
// migrations and may be nil.
func New(path string, migrationFS fs.FS) Provider {
	if config.IsJSONPath(path) {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path, migrationFS)
}

// Open loads the store at path, initializing it first when it does not exist
// yet. A missing store is the same as an empty one.
func Open(p Provider) error {
	err := p.Load()
	if errors.Is(err, ErrNotInitialized) {
		return p.Init()
	}
	return err
}
