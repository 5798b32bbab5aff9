package grid

import (
	"testing"

	"github.com/julianstephens/huddle/internal/models"
)

func TestAxes(t *testing.T) {
	if len(Days) != 7 {
		t.Errorf("len(Days) = %d, want 7", len(Days))
	}
	if len(Times) != 24 {
		t.Fatalf("len(Times) = %d, want 24", len(Times))
	}
	if Times[0] != "00:00" || Times[9] != "09:00" || Times[23] != "23:00" {
		t.Errorf("unexpected time buckets: %v", Times)
	}
	if got := len(All()); got != 7*24 {
		t.Errorf("len(All()) = %d, want %d", got, 7*24)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		slot models.TimeSlot
		want bool
	}{
		{models.TimeSlot{Day: "Monday", Time: "09:00"}, true},
		{models.TimeSlot{Day: "Sunday", Time: "23:00"}, true},
		{models.TimeSlot{Day: "Mon", Time: "09:00"}, false},
		{models.TimeSlot{Day: "Monday", Time: "09:30"}, false},
		{models.TimeSlot{}, false},
	}
	for _, tt := range tests {
		if got := Contains(tt.slot); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestSortDayMajor(t *testing.T) {
	slots := []models.TimeSlot{
		{Day: "Tuesday", Time: "08:00"},
		{Day: "Holiday", Time: "01:00"},
		{Day: "Monday", Time: "10:00"},
		{Day: "Monday", Time: "late"},
		{Day: "Monday", Time: "09:00"},
		{Day: "Extra", Time: "01:00"},
	}
	Sort(slots)

	want := []models.TimeSlot{
		{Day: "Monday", Time: "09:00"},
		{Day: "Monday", Time: "10:00"},
		{Day: "Monday", Time: "late"},
		{Day: "Tuesday", Time: "08:00"},
		{Day: "Extra", Time: "01:00"},
		{Day: "Holiday", Time: "01:00"},
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("Sort()[%d] = %v, want %v", i, slots[i], want[i])
		}
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in      string
		want    models.TimeSlot
		wantErr bool
	}{
		{in: "Monday@09:00", want: models.TimeSlot{Day: "Monday", Time: "09:00"}},
		{in: "mon@9", want: models.TimeSlot{Day: "Monday", Time: "09:00"}},
		{in: "THU@14", want: models.TimeSlot{Day: "Thursday", Time: "14:00"}},
		{in: "sun 0", want: models.TimeSlot{Day: "Sunday", Time: "00:00"}},
		{in: "fri@23:00", want: models.TimeSlot{Day: "Friday", Time: "23:00"}},
		{in: "fri@24", wantErr: true},
		{in: "fri@9:30", wantErr: true},
		{in: "someday@9", wantErr: true},
		{in: "monday", wantErr: true},
		{in: "mon@", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSlot(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSlot(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSlot(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseSlot(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSlotsStopsAtFirstError(t *testing.T) {
	if _, err := ParseSlots([]string{"mon@9", "bogus"}); err == nil {
		t.Error("ParseSlots() expected error for invalid entry")
	}
	slots, err := ParseSlots([]string{"mon@9", "tue@10"})
	if err != nil {
		t.Fatalf("ParseSlots() unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Errorf("len(ParseSlots()) = %d, want 2", len(slots))
	}
}
