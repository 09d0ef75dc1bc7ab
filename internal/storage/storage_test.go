package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/courtwatch/courtwatch/internal/schedule"
)

func sampleSnapshot() *schedule.Snapshot {
	venues := map[string]schedule.VenueResult{
		"darebin": {
			Name: "Darebin",
			Days: map[string]schedule.Day{
				"2025-06-02": {
					{TimeLabel: "6:00 AM", Time24h: "06:00", RawStatus: "3 / 5 AVAILABLE", Available: 3, Capacity: 5},
				},
			},
		},
		"macleod": {
			Name:  "Macleod",
			Days:  map[string]schedule.Day{},
			Error: "navigation timeout",
		},
	}
	return schedule.NewSnapshot(venues, time.Date(2025, 6, 1, 18, 30, 0, 0, time.UTC))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	original := sampleSnapshot()
	if err := store.Save(original); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if loaded.LastUpdated != original.LastUpdated {
		t.Errorf("LastUpdated = %q, expected %q", loaded.LastUpdated, original.LastUpdated)
	}
	if len(loaded.Venues) != 2 {
		t.Fatalf("expected 2 venues, got %d", len(loaded.Venues))
	}
	darebin := loaded.Venues["darebin"]
	if darebin.Name != "Darebin" {
		t.Errorf("venue name = %q", darebin.Name)
	}
	day := darebin.Days["2025-06-02"]
	if len(day) != 1 || day[0].Available != 3 || day[0].Capacity != 5 {
		t.Errorf("slot round trip failed: %+v", day)
	}
	if loaded.Venues["macleod"].Error != "navigation timeout" {
		t.Errorf("error field lost: %+v", loaded.Venues["macleod"])
	}
}

func TestLoadMissingFileReturnsEmptySnapshot(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	snapshot, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if snapshot.Venues == nil || len(snapshot.Venues) != 0 {
		t.Errorf("expected empty venue map, got %v", snapshot.Venues)
	}
	if snapshot.LastUpdated != "" {
		t.Errorf("expected no timestamp, got %q", snapshot.LastUpdated)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "availability.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Load(); err == nil {
		t.Error("expected an error for a corrupt snapshot file")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := store.Save(sampleSnapshot()); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("expected only availability.json, got %d entries", len(entries))
	}
}

func TestSaveOverwritesPreviousSnapshot(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := store.Save(sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	updated := schedule.NewSnapshot(map[string]schedule.VenueResult{
		"aqualink": {Name: "Aqualink", Days: map[string]schedule.Day{}},
	}, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC))
	if err := store.Save(updated); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Venues) != 1 {
		t.Fatalf("expected replacement, got %d venues", len(loaded.Venues))
	}
	if _, ok := loaded.Venues["aqualink"]; !ok {
		t.Error("expected aqualink in replaced snapshot")
	}
}
