// Package activity keeps a local ledger of time spent in the library.
// The cumulative hour count feeds the cosmetic badge tier.
package activity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Visit is one recorded library session.
type Visit struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Hours float64   `json:"hours"`
}

// Ledger is the persisted structure.
type Ledger struct {
	Version    string  `json:"version"`
	Visits     []Visit `json:"visits,omitempty"`
	TotalHours float64 `json:"total_hours"`
}

// Tracker manages visit recording and persistence.
type Tracker struct {
	mu       sync.Mutex
	data     Ledger
	filePath string
}

// NewTracker creates a tracker persisting under the given data directory.
func NewTracker(dataDir string) (*Tracker, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	t := &Tracker{
		filePath: filepath.Join(dataDir, "activity.json"),
		data:     Ledger{Version: "1.0"},
	}
	// A missing or corrupt ledger starts over empty; hours are cosmetic.
	_ = t.load()
	return t, nil
}

func (t *Tracker) load() error {
	data, err := os.ReadFile(t.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var loaded Ledger
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	t.mu.Lock()
	t.data = loaded
	t.mu.Unlock()
	return nil
}

// Record adds one visit and persists the ledger. Visits with a
// non-positive duration are rejected with an error and leave the ledger
// untouched.
func (t *Tracker) Record(start, end time.Time) error {
	hours := end.Sub(start).Hours()
	if hours <= 0 {
		return fmt.Errorf("visit must end after it starts")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.Visits = append(t.data.Visits, Visit{Start: start, End: end, Hours: hours})
	t.data.TotalHours += hours
	return t.saveLocked()
}

// TotalHours returns the cumulative hours across all visits.
func (t *Tracker) TotalHours() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data.TotalHours
}

// Visits returns a copy of the recorded visits.
func (t *Tracker) Visits() []Visit {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Visit, len(t.data.Visits))
	copy(out, t.data.Visits)
	return out
}

func (t *Tracker) saveLocked() error {
	data, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.filePath, data, 0644)
}
