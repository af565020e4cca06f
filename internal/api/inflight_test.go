package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"libshelf/internal/borrow"

	"go.uber.org/goleak"
)

// A double-click on "Return" must not issue two requests for the same
// record: the second caller awaits and shares the first round trip.
func TestMutate_CoalescesConcurrentDuplicates(t *testing.T) {
	defer goleak.VerifyNone(t)

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		time.Sleep(50 * time.Millisecond) // hold the first request open
		writeRecord(w, &borrow.Record{ID: "rec-1", Status: borrow.StatusReturned, ReturnDate: timePtr(time.Now())})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.httpClient.CloseIdleConnections()

	const callers = 4
	results := make([]*borrow.Record, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = c.Return(context.Background(), "rec-1", ReturnInput{ReturnCondition: "good"})
		}(i)
	}
	wg.Wait()

	if got := atomic.LoadInt64(&hits); got != 1 {
		t.Fatalf("server hit %d times, want 1", got)
	}
	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Fatal("callers did not share one result")
		}
	}
}

// Different records mutate independently; the guard keys on action+id.
func TestMutate_DistinctRecordsNotCoalesced(t *testing.T) {
	defer goleak.VerifyNone(t)

	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeRecord(w, &borrow.Record{ID: "x", Status: borrow.StatusBorrowed})
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	defer c.httpClient.CloseIdleConnections()

	var wg sync.WaitGroup
	for _, id := range []string{"rec-1", "rec-2"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := c.WaiveFine(context.Background(), id); err != nil {
				t.Errorf("WaiveFine(%s): %v", id, err)
			}
		}(id)
	}
	wg.Wait()

	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Fatalf("server hit %d times, want 2", got)
	}
}

// Sequential repeats are separate requests; the guard only collapses
// overlapping calls.
func TestMutate_SequentialCallsGoThrough(t *testing.T) {
	var hits int64
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		writeRecord(w, &borrow.Record{ID: "rec-1", Status: borrow.StatusBorrowed})
	})
	c := newTestClient(t, handler)

	for i := 0; i < 2; i++ {
		if _, err := c.WaiveFine(context.Background(), "rec-1"); err != nil {
			t.Fatalf("WaiveFine: %v", err)
		}
	}
	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Fatalf("server hit %d times, want 2", got)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
