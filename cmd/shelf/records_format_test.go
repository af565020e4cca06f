package main

import (
	"strings"
	"testing"
	"time"

	"libshelf/internal/borrow"
)

func TestFormatRecord_FineDisplay(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	overdueSince := now.Add(-5 * 24 * time.Hour)

	tests := []struct {
		name        string
		record      *borrow.Record
		wantSub     string
		rejectedSub string
	}{
		{
			name: "server fine shown with payment status",
			record: &borrow.Record{
				ID: "rec-1", Book: borrow.Book{Title: "Operating Systems"},
				Status: borrow.StatusOverdue, DueDate: overdueSince,
				Fine: 5, PaymentStatus: borrow.PaymentPending,
			},
			wantSub: "fine 5.00 (Pending)",
		},
		{
			name: "pending overdue without server fine shows estimate",
			record: &borrow.Record{
				ID: "rec-2", Book: borrow.Book{Title: "Compilers"},
				Status: borrow.StatusOverdue, DueDate: overdueSince,
				PaymentStatus: borrow.PaymentPending,
			},
			wantSub: "fine ~5.00 (estimate)",
		},
		{
			name: "waived fine never resurfaces as an estimate",
			record: &borrow.Record{
				ID: "rec-3", Book: borrow.Book{Title: "Networks"},
				Status: borrow.StatusOverdue, DueDate: overdueSince,
				Fine: 0, PaymentStatus: borrow.PaymentWaived,
			},
			rejectedSub: "estimate",
		},
		{
			name: "paid fine never resurfaces as an estimate",
			record: &borrow.Record{
				ID: "rec-4", Book: borrow.Book{Title: "Databases"},
				Status: borrow.StatusOverdue, DueDate: overdueSince,
				Fine: 0, PaymentStatus: borrow.PaymentPaid,
			},
			rejectedSub: "estimate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRecord(tt.record, now)
			if tt.wantSub != "" && !strings.Contains(got, tt.wantSub) {
				t.Fatalf("formatRecord = %q, want substring %q", got, tt.wantSub)
			}
			if tt.rejectedSub != "" && strings.Contains(got, tt.rejectedSub) {
				t.Fatalf("formatRecord = %q, must not contain %q", got, tt.rejectedSub)
			}
		})
	}
}

func TestFormatRecord_ReturnedShowsDate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	returned := now.Add(-24 * time.Hour)
	r := &borrow.Record{
		ID: "rec-5", Book: borrow.Book{Title: "Algorithms"},
		Status: borrow.StatusReturned, DueDate: now.Add(-48 * time.Hour),
		ReturnDate: &returned, PaymentStatus: borrow.PaymentPending,
	}
	got := formatRecord(r, now)
	if !strings.Contains(got, "returned 2026-08-30") {
		t.Fatalf("formatRecord = %q, want return date", got)
	}
	// Returned records accrue nothing regardless of the due date.
	if strings.Contains(got, "estimate") {
		t.Fatalf("formatRecord = %q, returned record must not show an estimate", got)
	}
}
