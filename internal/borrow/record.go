// Package borrow holds the client-side model of a borrow transaction and
// the pure functions that derive display state from it. The backend owns
// every transition; this package never mutates server state.
package borrow

import "time"

// Status is the server-assigned lifecycle state of a record. The client
// observes transitions via re-fetch, it never sets this field itself.
type Status string

const (
	StatusBorrowed Status = "Borrowed"
	StatusOverdue  Status = "Overdue"
	StatusReturned Status = "Returned"
)

// PaymentStatus tracks what happened to an accrued fine.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentWaived  PaymentStatus = "Waived"
)

// Student is a read-only reference owned by the backend.
type Student struct {
	ID         string `json:"id"`
	RollNumber string `json:"rollNumber"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       int    `json:"year"`
}

// Book is a read-only reference owned by the backend. Rack is the
// physical shelving location used for lookup.
type Book struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	ISBN            string   `json:"isbn"`
	Categories      []string `json:"categories"`
	Rack            string   `json:"rack"`
	Available       bool     `json:"available"`
	CopiesAvailable int      `json:"copiesAvailable"`
}

// Record is the client-visible projection of one borrow transaction.
// Fine is the authoritative server value; see EstimateFine for the
// display-only local estimate.
type Record struct {
	ID               string        `json:"id"`
	Student          Student       `json:"student"`
	Book             Book          `json:"book"`
	BorrowDate       time.Time     `json:"borrowDate"`
	DueDate          time.Time     `json:"dueDate"`
	ReturnDate       *time.Time    `json:"returnDate,omitempty"`
	Status           Status        `json:"status"`
	Fine             float64       `json:"fine"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	ConditionAtIssue string        `json:"conditionAtIssue,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	AdminAction      string        `json:"adminAction,omitempty"`
	IssuedBy         string        `json:"issuedBy,omitempty"`
}

// Consistent reports whether the record satisfies the intended contract:
// a Returned record carries a return date. Inconsistent records are still
// accepted (the server is authoritative); callers log and move on.
func (r *Record) Consistent() bool {
	if r.Status == StatusReturned && r.ReturnDate == nil {
		return false
	}
	return true
}

// Active reports whether the record still occupies one of the student's
// borrow slots.
func (r *Record) Active() bool {
	return r.Status != StatusReturned
}
