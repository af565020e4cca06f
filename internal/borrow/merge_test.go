package borrow

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMerge_ReplacesExactlyOne(t *testing.T) {
	a := &Record{ID: "a", Status: StatusBorrowed}
	b := &Record{ID: "b", Status: StatusBorrowed}
	c := &Record{ID: "c", Status: StatusOverdue}
	list := []*Record{a, b, c}

	now := time.Now()
	updated := &Record{ID: "b", Status: StatusReturned, ReturnDate: &now}
	got := Merge(list, updated)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantIDs := []string{"a", "b", "c"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Fatalf("order disturbed: %v", got)
		}
	}
	// Unrelated elements keep their identity, the target is swapped.
	if got[0] != a || got[2] != c {
		t.Fatal("unrelated elements lost reference identity")
	}
	if got[1] != updated {
		t.Fatal("target element was not replaced")
	}
}

func TestMerge_AppendsUnknownID(t *testing.T) {
	list := []*Record{{ID: "a"}}
	got := Merge(list, &Record{ID: "new"})
	if len(got) != 2 || got[1].ID != "new" {
		t.Fatalf("expected append, got %v", got)
	}
}

func TestMerge_NilUpdateIsNoop(t *testing.T) {
	list := []*Record{{ID: "a"}}
	if got := Merge(list, nil); len(got) != 1 {
		t.Fatalf("nil update changed the list: %v", got)
	}
}

func TestActive(t *testing.T) {
	now := time.Now()
	list := []*Record{
		{ID: "a", Status: StatusBorrowed},
		{ID: "b", Status: StatusReturned, ReturnDate: &now},
		{ID: "c", Status: StatusOverdue},
	}
	got := Active(list)
	want := []string{"a", "c"}
	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Fatalf("Active mismatch (-want +got):\n%s", diff)
	}
	if len(list) != 3 {
		t.Fatal("Active modified its input")
	}
}
