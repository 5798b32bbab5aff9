// Package aggregator computes, for every cell of the weekly grid, which
// participants are free and which cells are free for everyone.
package aggregator

import (
	"github.com/julianstephens/huddle/internal/grid"
	"github.com/julianstephens/huddle/internal/models"
)

// Cell is the aggregated view of one grid cell.
type Cell struct {
	Occupants []string // participant names, in submission order
	AllFree   bool
}

// Result is the aggregated view of a set of submissions.
type Result struct {
	// Cells holds only cells with at least one occupant. A missing cell means
	// nobody is free there.
	Cells map[models.TimeSlot]Cell
	// Intersection lists the cells where every participant is free, day-major.
	Intersection []models.TimeSlot
	// Participants lists the names of submissions with non-empty availability.
	Participants []string
	// Threshold is the number of occupants a cell needs to be free for everyone.
	Threshold int
}

// Aggregate builds the occupancy view for submissions. It does not modify its
// input and returns the same result for the same input.
func Aggregate(submissions []models.Submission) Result {
	result := Result{
		Cells:        make(map[models.TimeSlot]Cell),
		Intersection: []models.TimeSlot{},
		Participants: []string{},
	}

	// Step 1: Only submissions with availability take part
	for _, sub := range submissions {
		if !sub.HasAvailability() {
			continue
		}
		result.Participants = append(result.Participants, sub.Name)

		// Step 2: Register the participant once per distinct cell
		for _, slot := range sub.UniqueSlots() {
			cell := result.Cells[slot]
			cell.Occupants = append(cell.Occupants, sub.Name)
			result.Cells[slot] = cell
		}
	}
	result.Threshold = len(result.Participants)

	// Step 3: Mark the cells every participant shares
	if result.Threshold == 0 {
		return result
	}
	for slot, cell := range result.Cells {
		if len(cell.Occupants) == result.Threshold {
			cell.AllFree = true
			result.Cells[slot] = cell
			result.Intersection = append(result.Intersection, slot)
		}
	}
	grid.Sort(result.Intersection)

	return result
}

// Cell returns the aggregated cell for slot and whether anyone is free there.
func (r Result) Cell(slot models.TimeSlot) (Cell, bool) {
	cell, ok := r.Cells[slot]
	return cell, ok
}

// SortedCells returns the occupied cells, day-major.
func (r Result) SortedCells() []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(r.Cells))
	for slot := range r.Cells {
		slots = append(slots, slot)
	}
	grid.Sort(slots)
	return slots
}

// HasCommonSlot reports whether at least one cell is free for everyone.
func (r Result) HasCommonSlot() bool {
	return len(r.Intersection) > 0
}
