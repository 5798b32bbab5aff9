package storage

import (
	"database/sql"

	"github.com/julianstephens/huddle/internal/models"
	"github.com/julianstephens/huddle/internal/storage/sqlite"
)

// ErrNotInitialized is returned by Load and by the data methods when the
// backing file does not exist yet.
var ErrNotInitialized = sqlite.ErrNotInitialized

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Submissions
	ListAll() ([]models.Submission, error)
	Upsert(models.Submission) error
	ClearAll() error

	// Metadata
	GetConfigPath() string
}

// DBProvider is implemented by backends that sit on a SQL database
type DBProvider interface {
	GetDB() *sql.DB
}
