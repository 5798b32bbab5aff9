package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/models"
)

// Record is the persisted layout: a single named list of submissions
type Record struct {
	Submissions []models.Submission `json:"meetingSubmissions"`
}

// JSONStore keeps every submission in one JSON file, rewritten on each change
type JSONStore struct {
	path   string
	record *Record
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Init creates the file with an empty record when it does not exist and
// loads it otherwise.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	record := &Record{Submissions: []models.Submission{}}
	if err := s.write(record); err != nil {
		return err
	}
	s.record = record
	return nil
}

// Load reads the file. Content that cannot be parsed is treated as an empty
// record and is replaced on the next write.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	record := &Record{}
	if err := json.Unmarshal(data, record); err != nil {
		logger.Warn("Stored submissions are malformed, treating as empty", "path", s.path, "error", err)
		record = &Record{}
	}

	// Drop entries that cannot be keyed by name
	record.Submissions = slices.DeleteFunc(record.Submissions, func(sub models.Submission) bool {
		return strings.TrimSpace(sub.Name) == ""
	})
	if record.Submissions == nil {
		record.Submissions = []models.Submission{}
	}

	s.record = record
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// write persists record. The in-memory record is only swapped after a
// successful write.
func (s *JSONStore) write(record *Record) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) ListAll() ([]models.Submission, error) {
	if s.record == nil {
		return nil, ErrNotInitialized
	}

	submissions := make([]models.Submission, len(s.record.Submissions))
	for i, sub := range s.record.Submissions {
		sub.Availability = slices.Clone(sub.Availability)
		submissions[i] = sub
	}
	return submissions, nil
}

// Upsert inserts sub, or replaces the submission with the same name in place.
// A replaced submission keeps its ID.
func (s *JSONStore) Upsert(sub models.Submission) error {
	if s.record == nil {
		return ErrNotInitialized
	}

	sub.Availability = slices.Clone(sub.Availability)
	if sub.Availability == nil {
		sub.Availability = []models.TimeSlot{}
	}

	next := slices.Clone(s.record.Submissions)
	idx := slices.IndexFunc(next, func(existing models.Submission) bool {
		return existing.Name == sub.Name
	})
	if idx >= 0 && next[idx].ID != "" {
		sub.ID = next[idx].ID
	}
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	if idx >= 0 {
		next[idx] = sub
	} else {
		next = append(next, sub)
	}

	if err := s.write(&Record{Submissions: next}); err != nil {
		return err
	}
	s.record.Submissions = next
	return nil
}

func (s *JSONStore) ClearAll() error {
	if s.record == nil {
		return ErrNotInitialized
	}
	record := &Record{Submissions: []models.Submission{}}
	if err := s.write(record); err != nil {
		return err
	}
	s.record = record
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
