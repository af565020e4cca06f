package activity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTracker_RecordAggregatesAndPersists(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if err := tracker.Record(start, start.Add(2*time.Hour)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := tracker.Record(start.Add(24*time.Hour), start.Add(27*time.Hour)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if got := tracker.TotalHours(); got != 5 {
		t.Fatalf("TotalHours = %v, want 5", got)
	}
	if got := len(tracker.Visits()); got != 2 {
		t.Fatalf("Visits = %d, want 2", got)
	}

	data, err := os.ReadFile(filepath.Join(dir, "activity.json"))
	if err != nil {
		t.Fatalf("read activity.json: %v", err)
	}
	var persisted Ledger
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("unmarshal activity.json: %v", err)
	}
	if persisted.TotalHours != 5 {
		t.Fatalf("persisted total=%v, want 5", persisted.TotalHours)
	}

	// A fresh tracker over the same dir sees the same ledger.
	reloaded, err := NewTracker(dir)
	if err != nil {
		t.Fatalf("NewTracker reload: %v", err)
	}
	if got := reloaded.TotalHours(); got != 5 {
		t.Fatalf("reloaded total = %v, want 5", got)
	}
}

func TestTracker_RejectsBackwardsVisit(t *testing.T) {
	tracker, err := NewTracker(t.TempDir())
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	now := time.Now()
	if err := tracker.Record(now, now.Add(-time.Hour)); err == nil {
		t.Fatal("expected error for visit ending before it starts")
	}
	if got := tracker.TotalHours(); got != 0 {
		t.Fatalf("rejected visit changed total: %v", got)
	}
}

func TestTracker_CorruptLedgerStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "activity.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	tracker, err := NewTracker(dir)
	if err != nil {
		t.Fatalf("NewTracker: %v", err)
	}
	if got := tracker.TotalHours(); got != 0 {
		t.Fatalf("corrupt ledger should start empty, got %v hours", got)
	}
}
