package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/migration"
	"github.com/julianstephens/huddle/migrations"
)

// ErrNotInitialized is returned by Load when the database file does not exist
var ErrNotInitialized = errors.New("storage not initialized, run 'huddle init' first")

type Store struct {
	path        string
	db          *sql.DB
	migrationFS fs.FS
}

// NewStore returns a store for the database at path. A nil migrationFS
// selects the migrations embedded in the binary.
func NewStore(path string, migrationFS fs.FS) *Store {
	return &Store{
		path:        path,
		migrationFS: migrationFS,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}

	if err := s.open(); err != nil {
		return err
	}

	return s.validateSchemaVersion()
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) migrationsRoot() (fs.FS, error) {
	if s.migrationFS != nil {
		return s.migrationFS, nil
	}
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return sub, nil
}

func (s *Store) runMigrations() error {
	root, err := s.migrationsRoot()
	if err != nil {
		return err
	}

	_, err = migration.NewRunner(s.db, root).ApplyMigrations(func(msg string) {
		logger.Debug(msg, "db", s.path)
	})
	return err
}

func (s *Store) validateSchemaVersion() error {
	root, err := s.migrationsRoot()
	if err != nil {
		return err
	}
	return migration.NewRunner(s.db, root).ValidateVersion()
}

// SchemaVersion reports the applied and the latest known schema versions
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, ErrNotInitialized
	}
	root, err := s.migrationsRoot()
	if err != nil {
		return 0, 0, err
	}
	runner := migration.NewRunner(s.db, root)
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, or nil before Init or Load
func (s *Store) GetDB() *sql.DB {
	return s.db
}
