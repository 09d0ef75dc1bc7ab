package schedule

import (
	"sort"
	"testing"
	"time"
)

func mkSlots(labels ...string) []Slot {
	slots := make([]Slot, 0, len(labels))
	for _, l := range labels {
		slots = append(slots, Slot{TimeLabel: l, Time24h: Canonical(l)})
	}
	return slots
}

func TestSplitDaysScenario(t *testing.T) {
	slots := []Slot{
		{TimeLabel: "8:00 AM", Available: 3, Capacity: 5},
		{TimeLabel: "9:00 AM", Available: 0, Capacity: 5},
		{TimeLabel: "7:30 AM", Available: 5, Capacity: 5},
	}
	start := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)

	days := SplitDays(slots, start)

	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d: %v", len(days), days)
	}
	day1 := days["2024-01-10"]
	if len(day1) != 2 {
		t.Fatalf("expected 2 slots on 2024-01-10, got %d", len(day1))
	}
	if day1[0].TimeLabel != "8:00 AM" || day1[1].TimeLabel != "9:00 AM" {
		t.Errorf("day 1 slots out of order: %v", day1)
	}
	if day1[0].Available != 3 || day1[1].Available != 0 {
		t.Errorf("day 1 availability wrong: %v", day1)
	}
	day2 := days["2024-01-11"]
	if len(day2) != 1 || day2[0].TimeLabel != "7:30 AM" || day2[0].Available != 5 {
		t.Errorf("day 2 wrong: %v", day2)
	}
}

func TestSplitDaysBoundaryCount(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		days   int
	}{
		{"empty", nil, 0},
		{"single slot", []string{"6:00 AM"}, 1},
		{"one day ascending", []string{"6:00 AM", "7:00 AM", "8:00 PM"}, 1},
		{"reset at midnight-ish", []string{"8:30 PM", "5:30 AM"}, 2},
		{"equal time is a boundary", []string{"9:00 AM", "9:00 AM"}, 2},
		{"three days", []string{"6:00 AM", "9:00 PM", "6:00 AM", "9:00 PM", "6:00 AM"}, 3},
		{"unparseable label maps to midnight", []string{"6:00 AM", "??", "7:00 AM"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
			days := SplitDays(mkSlots(tt.labels...), start)
			if len(days) != tt.days {
				t.Errorf("expected %d days, got %d: %v", tt.days, len(days), days)
			}

			// Day count must equal 1 + number of non-increasing transitions.
			if len(tt.labels) > 0 {
				boundaries := 0
				for i := 1; i < len(tt.labels); i++ {
					if MinutesOfDay(tt.labels[i]) <= MinutesOfDay(tt.labels[i-1]) {
						boundaries++
					}
				}
				if len(days) != boundaries+1 {
					t.Errorf("expected %d days from %d boundaries, got %d", boundaries+1, boundaries, len(days))
				}
			}
		})
	}
}

func TestSplitDaysPreservesSlotCountAndOrder(t *testing.T) {
	labels := []string{"6:00 AM", "7:30 AM", "9:00 PM", "5:30 AM", "6:00 AM", "8:00 PM"}
	start := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	days := SplitDays(mkSlots(labels...), start)

	total := 0
	for _, day := range days {
		total += len(day)
	}
	if total != len(labels) {
		t.Errorf("expected %d slots across days, got %d", len(labels), total)
	}

	day1 := days["2024-07-01"]
	want := []string{"6:00 AM", "7:30 AM", "9:00 PM"}
	if len(day1) != len(want) {
		t.Fatalf("expected %d slots on first day, got %d", len(want), len(day1))
	}
	for i, label := range want {
		if day1[i].TimeLabel != label {
			t.Errorf("slot %d = %q, expected %q", i, day1[i].TimeLabel, label)
		}
	}
}

// Re-flattening a segmented result in date order and re-segmenting must
// reproduce the same boundaries.
func TestSplitDaysIdempotent(t *testing.T) {
	labels := []string{"6:00 AM", "8:00 AM", "9:00 PM", "5:30 AM", "7:00 AM", "6:30 AM", "8:00 PM"}
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	first := SplitDays(mkSlots(labels...), start)

	var dates []string
	for d := range first {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	var flattened []Slot
	for _, d := range dates {
		flattened = append(flattened, first[d]...)
	}

	second := SplitDays(flattened, start)
	if len(second) != len(first) {
		t.Fatalf("re-segmentation changed day count: %d vs %d", len(second), len(first))
	}
	for date, day := range first {
		if len(second[date]) != len(day) {
			t.Errorf("day %s changed size: %d vs %d", date, len(second[date]), len(day))
		}
	}
}
