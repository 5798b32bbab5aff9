package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/models"
)

// ListAll returns every submission in the order names were first submitted.
// Rows whose availability cannot be decoded are skipped.
func (s *Store) ListAll() ([]models.Submission, error) {
	if s.db == nil {
		return nil, ErrNotInitialized
	}

	rows, err := s.db.Query(`
		SELECT id, name, availability
		FROM submissions
		ORDER BY position, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		var sub models.Submission
		var availability string
		if err := rows.Scan(&sub.ID, &sub.Name, &availability); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if err := json.Unmarshal([]byte(availability), &sub.Availability); err != nil {
			logger.Warn("Skipping submission with malformed availability", "name", sub.Name, "error", err)
			continue
		}
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read submissions: %w", err)
	}

	return submissions, nil
}

// Upsert inserts sub, or replaces the availability of the submission with the
// same name. A replaced submission keeps its ID and its position.
func (s *Store) Upsert(sub models.Submission) error {
	if s.db == nil {
		return ErrNotInitialized
	}

	slots := sub.Availability
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	availability, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}

	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(position) + 1 FROM submissions").Scan(&next); err != nil {
		return fmt.Errorf("failed to compute position: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO submissions (id, name, position, availability, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			availability = excluded.availability,
			updated_at = excluded.updated_at`,
		sub.ID, sub.Name, next.Int64, string(availability), now)
	if err != nil {
		return fmt.Errorf("failed to save submission: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}
	return nil
}

func (s *Store) ClearAll() error {
	if s.db == nil {
		return ErrNotInitialized
	}
	if _, err := s.db.Exec("DELETE FROM submissions"); err != nil {
		return fmt.Errorf("failed to clear submissions: %w", err)
	}
	return nil
}
