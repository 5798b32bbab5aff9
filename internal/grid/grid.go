// Package grid defines the fixed weekly availability grid: seven days by
// twenty-four hourly buckets.
package grid

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/huddle/internal/models"
)

// Days lists the grid columns in display order.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Times lists the grid rows in display order, "00:00" through "23:00".
var Times = func() []string {
	times := make([]string, 24)
	for h := range times {
		times[h] = fmt.Sprintf("%02d:00", h)
	}
	return times
}()

var dayMap = map[string]string{
	"mon":       "Monday",
	"monday":    "Monday",
	"tue":       "Tuesday",
	"tues":      "Tuesday",
	"tuesday":   "Tuesday",
	"wed":       "Wednesday",
	"wednesday": "Wednesday",
	"thu":       "Thursday",
	"thur":      "Thursday",
	"thurs":     "Thursday",
	"thursday":  "Thursday",
	"fri":       "Friday",
	"friday":    "Friday",
	"sat":       "Saturday",
	"saturday":  "Saturday",
	"sun":       "Sunday",
	"sunday":    "Sunday",
}

// DayIndex returns the column of day, or -1 if day is not on the grid.
func DayIndex(day string) int {
	return slices.Index(Days, day)
}

// TimeIndex returns the row of t, or -1 if t is not on the grid.
func TimeIndex(t string) int {
	return slices.Index(Times, t)
}

// Contains reports whether slot names a cell on the grid.
func Contains(slot models.TimeSlot) bool {
	return DayIndex(slot.Day) >= 0 && TimeIndex(slot.Time) >= 0
}

// Slot returns the slot at the given column and row.
func Slot(col, row int) models.TimeSlot {
	return models.TimeSlot{Day: Days[col], Time: Times[row]}
}

// All returns every cell on the grid, day-major.
func All() []models.TimeSlot {
	slots := make([]models.TimeSlot, 0, len(Days)*len(Times))
	for col := range Days {
		for row := range Times {
			slots = append(slots, Slot(col, row))
		}
	}
	return slots
}

// Compare orders slots day-major, time-minor. Values on the grid sort by grid
// position; values off the grid sort after them, lexicographically.
func Compare(a, b models.TimeSlot) int {
	if c := compareAxis(DayIndex(a.Day), DayIndex(b.Day), a.Day, b.Day); c != 0 {
		return c
	}
	return compareAxis(TimeIndex(a.Time), TimeIndex(b.Time), a.Time, b.Time)
}

func compareAxis(ia, ib int, a, b string) int {
	switch {
	case ia >= 0 && ib >= 0:
		return cmp.Compare(ia, ib)
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// Sort orders slots in place using Compare.
func Sort(slots []models.TimeSlot) {
	slices.SortFunc(slots, Compare)
}

// ParseDay resolves a full or abbreviated day name, case-insensitively.
func ParseDay(s string) (string, error) {
	if day, ok := dayMap[strings.ToLower(strings.TrimSpace(s))]; ok {
		return day, nil
	}
	return "", fmt.Errorf("invalid day: %q", s)
}

// ParseTime resolves an hour given as "9", "09" or "09:00" to its grid bucket.
func ParseTime(s string) (string, error) {
	s = strings.TrimSpace(s)
	hourStr, minuteStr, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return "", fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	if hour < 0 || hour >= len(Times) {
		return "", fmt.Errorf("hour out of range in %q", s)
	}
	if hasMinutes {
		minute, err := strconv.Atoi(minuteStr)
		if err != nil || minute != 0 {
			return "", fmt.Errorf("time %q is not on an hourly boundary", s)
		}
	}
	return Times[hour], nil
}

// ParseSlot parses "Monday@09:00", "mon@9" or "mon 9" into a slot.
func ParseSlot(s string) (models.TimeSlot, error) {
	dayStr, timeStr, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return models.TimeSlot{}, fmt.Errorf("invalid slot %q (expected DAY@HH:MM)", s)
		}
		dayStr, timeStr = fields[0], fields[1]
	}
	day, err := ParseDay(dayStr)
	if err != nil {
		return models.TimeSlot{}, err
	}
	t, err := ParseTime(timeStr)
	if err != nil {
		return models.TimeSlot{}, err
	}
	return models.TimeSlot{Day: day, Time: t}, nil
}

// ParseSlots parses each entry with ParseSlot, stopping at the first error.
func ParseSlots(entries []string) ([]models.TimeSlot, error) {
	slots := make([]models.TimeSlot, 0, len(entries))
	for _, entry := range entries {
		slot, err := ParseSlot(entry)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
