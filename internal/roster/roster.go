// Package roster is the boundary between the views and the submission store.
// It validates input and absorbs storage failures: a failed read is an empty
// list and a failed write is logged and dropped.
package roster

import (
	"strings"

	"github.com/julianstephens/huddle/internal/aggregator"
	"github.com/julianstephens/huddle/internal/grid"
	"github.com/julianstephens/huddle/internal/logger"
	"github.com/julianstephens/huddle/internal/models"
	"github.com/julianstephens/huddle/internal/storage"
	"github.com/julianstephens/huddle/internal/validation"
)

type Roster struct {
	store     storage.Provider
	validator *validation.Validator
}

// SubmitResult describes the outcome of an accepted submission
type SubmitResult struct {
	Submission models.Submission
	// Persisted is false when the store rejected the write
	Persisted bool
	// Replaced is true when a submission under the same name existed
	Replaced bool
	Warnings  validation.ValidationResult
}

func New(store storage.Provider, validator *validation.Validator) *Roster {
	if validator == nil {
		validator = validation.New(false)
	}
	return &Roster{store: store, validator: validator}
}

// List returns every submission in submission order, or an empty list when
// the store cannot be read.
func (r *Roster) List() []models.Submission {
	subs, err := r.store.ListAll()
	if err != nil {
		logger.Warn("Failed to read submissions, treating as empty", "error", err)
		return []models.Submission{}
	}
	return subs
}

// Submit validates and stores a submission for name, replacing any earlier
// submission under the same name. The only error is invalid input; storage
// failures are reported through SubmitResult.Persisted.
func (r *Roster) Submit(name string, slots []models.TimeSlot) (SubmitResult, error) {
	sub := models.Submission{
		Name:         strings.TrimSpace(name),
		Availability: slots,
	}
	if err := r.validator.ValidateSubmission(sub); err != nil {
		return SubmitResult{}, err
	}

	result := SubmitResult{Warnings: r.validator.CheckSlots(slots)}
	sub.Availability = sub.UniqueSlots()
	if sub.Availability == nil {
		sub.Availability = []models.TimeSlot{}
	}
	grid.Sort(sub.Availability)

	for _, existing := range r.List() {
		if existing.Name == sub.Name {
			result.Replaced = true
			sub.ID = existing.ID
			break
		}
	}

	if err := r.store.Upsert(sub); err != nil {
		logger.Warn("Failed to save submission", "name", sub.Name, "error", err)
		result.Submission = sub
		return result, nil
	}

	result.Persisted = true
	result.Submission = sub
	for _, stored := range r.List() {
		if stored.Name == sub.Name {
			result.Submission = stored
			break
		}
	}

	logger.Info("Saved submission", "name", sub.Name, "slots", len(sub.Availability), "replaced", result.Replaced)
	return result, nil
}

// Clear removes every submission and reports whether the store accepted it.
// Confirmation is the caller's job.
func (r *Roster) Clear() bool {
	if err := r.store.ClearAll(); err != nil {
		logger.Warn("Failed to clear submissions", "error", err)
		return false
	}
	logger.Info("Cleared all submissions")
	return true
}

// Aggregate reads a snapshot of the store and aggregates it
func (r *Roster) Aggregate() aggregator.Result {
	return aggregator.Aggregate(r.List())
}
