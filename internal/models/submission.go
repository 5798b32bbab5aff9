package models

import "fmt"

// TimeSlot identifies one cell in the weekly grid. It is comparable and is used
// directly as a map key.
type TimeSlot struct {
	Day  string `json:"day" validate:"required"`
	Time string `json:"time" validate:"required"`
}

func (s TimeSlot) String() string {
	return fmt.Sprintf("%s at %s", s.Day, s.Time)
}

// Submission is one participant's availability. Name is the deduplication key.
type Submission struct {
	ID           string     `json:"id"`
	Name         string     `json:"name" validate:"required,nonblank"`
	Availability []TimeSlot `json:"availability" validate:"dive"`
}

// HasAvailability reports whether the submission selects at least one slot.
func (s Submission) HasAvailability() bool {
	return len(s.Availability) > 0
}

// UniqueSlots returns the availability with duplicates removed, keeping the
// first occurrence of each slot. The receiver is not modified.
func (s Submission) UniqueSlots() []TimeSlot {
	if len(s.Availability) == 0 {
		return nil
	}
	seen := make(map[TimeSlot]struct{}, len(s.Availability))
	slots := make([]TimeSlot, 0, len(s.Availability))
	for _, slot := range s.Availability {
		if _, ok := seen[slot]; ok {
			continue
		}
		seen[slot] = struct{}{}
		slots = append(slots, slot)
	}
	return slots
}
