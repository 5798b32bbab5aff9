package storage

import (
	"fmt"

	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/models"
)

// unavailableStore stands in for a store that exists but could not be loaded.
// It reads as empty and rejects writes, so the damaged file is left as it was.
type unavailableStore struct {
	path string
	err  error
}

func (s *unavailableStore) Init() error  { return s.err }
func (s *unavailableStore) Load() error  { return s.err }
func (s *unavailableStore) Close() error { return nil }

func (s *unavailableStore) ListAll() ([]models.Submission, error) {
	return []models.Submission{}, nil
}

func (s *unavailableStore) Upsert(models.Submission) error {
	return fmt.Errorf("store unavailable: %w", s.err)
}

func (s *unavailableStore) ClearAll() error {
	return fmt.Errorf("store unavailable: %w", s.err)
}

func (s *unavailableStore) GetConfigPath() string {
	return s.path
}

// OpenOrEmpty opens p like Open. When the store cannot be loaded the failure
// is logged and the returned provider reads as an empty collection.
func OpenOrEmpty(p Provider) Provider {
	err := Open(p)
	if err == nil {
		return p
	}

	logger.Warn("Failed to load store, continuing with no submissions", "path", p.GetConfigPath(), "error", err)
	if closeErr := p.Close(); closeErr != nil {
		logger.Debug("Failed to close unreadable store", "error", closeErr)
	}
	return &unavailableStore{path: p.GetConfigPath(), err: err}
}
