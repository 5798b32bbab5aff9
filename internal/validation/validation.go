package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/huddle/internal/grid"
	"github.com/julianstephens/huddle/internal/models"
)

// ErrEmptyName is returned when a submission has no usable name.
var ErrEmptyName = errors.New("name is required")

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOffGridSlot   ConflictType = "off_grid_slot"
	ConflictDuplicateSlot ConflictType = "duplicate_slot"
)

// Conflict describes one questionable slot in a submission
type Conflict struct {
	Type        ConflictType
	Description string
	Slot        models.TimeSlot
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Has reports whether a conflict of the given type was found
func (vr *ValidationResult) Has(t ConflictType) bool {
	for _, c := range vr.Conflicts {
		if c.Type == t {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks submissions at the entry boundary. In strict mode, slots
// outside the weekly grid are rejected instead of reported.
type Validator struct {
	validate *validator.Validate
	strict   bool
}

// New creates a new Validator
func New(strict bool) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{validate: v, strict: strict}
}

// ValidateSubmission checks the submission's fields. A missing or blank name
// yields ErrEmptyName; the other failures wrap the validator's message.
func (v *Validator) ValidateSubmission(sub models.Submission) error {
	if err := v.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.StructField() == "Name" {
					return ErrEmptyName
				}
			}
			return fmt.Errorf("invalid availability: %s", verrs[0].Namespace())
		}
		return fmt.Errorf("invalid submission: %w", err)
	}

	if v.strict {
		result := v.CheckSlots(sub.Availability)
		for _, c := range result.Conflicts {
			if c.Type == ConflictOffGridSlot {
				return fmt.Errorf("slot %q is outside the weekly grid", c.Slot.String())
			}
		}
	}
	return nil
}

// CheckSlots reports slots that are off the grid or repeated. Neither prevents
// aggregation: duplicates are collapsed and off-grid slots are kept as-is.
// Slots missing a day or time never get here; ValidateSubmission rejects them.
func (v *Validator) CheckSlots(slots []models.TimeSlot) ValidationResult {
	var result ValidationResult
	seen := make(map[models.TimeSlot]bool, len(slots))

	for _, slot := range slots {
		if seen[slot] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateSlot,
				Description: fmt.Sprintf("%s is selected more than once", slot.String()),
				Slot:        slot,
			})
			continue
		}
		seen[slot] = true
		if !grid.Contains(slot) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOffGridSlot,
				Description: fmt.Sprintf("%s is not on the weekly grid", slot.String()),
				Slot:        slot,
			})
		}
	}

	return result
}
