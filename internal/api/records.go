package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"libshelf/internal/borrow"

	"go.uber.org/zap"
)

// Scope selects which record set to fetch.
type Scope string

const (
	// ScopeAll lists every record; the backend restricts it to admins.
	ScopeAll Scope = "all"
	// ScopeSelf lists the caller's own records.
	ScopeSelf Scope = "self"
)

type recordEnvelope struct {
	Data struct {
		Record *borrow.Record `json:"record"`
	} `json:"data"`
}

type recordListEnvelope struct {
	Status string `json:"status"`
	Data   struct {
		Records []*borrow.Record `json:"records"`
	} `json:"data"`
}

// ListRecords fetches borrow records for the given scope.
func (c *Client) ListRecords(ctx context.Context, scope Scope) ([]*borrow.Record, error) {
	path := "/borrow-records"
	if scope == ScopeSelf {
		path = "/borrow-records/student"
	}
	var env recordListEnvelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	for _, r := range env.Data.Records {
		if !r.Consistent() {
			c.logger.Warn("server returned inconsistent record",
				zap.String("id", r.ID), zap.String("status", string(r.Status)))
		}
	}
	return env.Data.Records, nil
}

// BorrowInput is the borrow request payload. Every field is required;
// validation happens before any network traffic.
type BorrowInput struct {
	StudentID        string    `json:"studentId"`
	BookID           string    `json:"bookId"`
	DueDate          time.Time `json:"dueDate"`
	ConditionAtIssue string    `json:"conditionAtIssue"`
	Notes            string    `json:"notes"`
	IssuedBy         string    `json:"issuedBy"`
}

func (in BorrowInput) validate() error {
	switch {
	case in.StudentID == "":
		return fmt.Errorf("studentId is required")
	case in.BookID == "":
		return fmt.Errorf("bookId is required")
	case in.DueDate.IsZero():
		return fmt.Errorf("dueDate is required")
	case in.ConditionAtIssue == "":
		return fmt.Errorf("conditionAtIssue is required")
	case in.Notes == "":
		return fmt.Errorf("notes is required")
	case in.IssuedBy == "":
		return fmt.Errorf("issuedBy is required")
	}
	return nil
}

// Borrow creates a new borrow record and returns the canonical server
// copy.
func (c *Client) Borrow(ctx context.Context, in BorrowInput) (*borrow.Record, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	key := "borrow:" + in.StudentID + ":" + in.BookID
	return c.mutate(ctx, key, http.MethodPost, "/borrow-records/borrow", in)
}

// ReturnInput describes the condition a book came back in.
type ReturnInput struct {
	ReturnCondition string `json:"returnCondition"`
	ReturnNotes     string `json:"returnNotes"`
}

// Return marks the record's book as returned.
func (c *Client) Return(ctx context.Context, id string, in ReturnInput) (*borrow.Record, error) {
	return c.mutate(ctx, "return:"+id, http.MethodPatch, "/borrow-records/"+id+"/return", in)
}

// Extend moves the record's due date.
func (c *Client) Extend(ctx context.Context, id string, dueDate time.Time) (*borrow.Record, error) {
	body := struct {
		DueDate time.Time `json:"dueDate"`
	}{dueDate}
	return c.mutate(ctx, "extend:"+id, http.MethodPatch, "/borrow-records/"+id+"/extend", body)
}

// MarkFinePaid settles the record's fine via the given payment method.
func (c *Client) MarkFinePaid(ctx context.Context, id, method string) (*borrow.Record, error) {
	body := struct {
		PaymentMethod string `json:"paymentMethod"`
	}{method}
	return c.mutate(ctx, "fine-paid:"+id, http.MethodPatch, "/borrow-records/"+id+"/fine/paid", body)
}

// WaiveFine forgives the record's fine.
func (c *Client) WaiveFine(ctx context.Context, id string) (*borrow.Record, error) {
	return c.mutate(ctx, "fine-waived:"+id, http.MethodPatch, "/borrow-records/"+id+"/fine/waived", struct{}{})
}

// UpdateRecord patches free-form fields (notes, adminAction, condition).
func (c *Client) UpdateRecord(ctx context.Context, id string, fields map[string]interface{}) (*borrow.Record, error) {
	return c.mutate(ctx, "update:"+id, http.MethodPatch, "/borrow-records/"+id, fields)
}

// mutate runs one mutation through the per-record in-flight guard. A
// concurrent duplicate of the same action on the same record does not
// issue a second request; it waits for and shares the first result.
func (c *Client) mutate(ctx context.Context, key, method, path string, body interface{}) (*borrow.Record, error) {
	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		var env recordEnvelope
		if err := c.do(ctx, method, path, body, &env); err != nil {
			return nil, err
		}
		if env.Data.Record == nil {
			return nil, fmt.Errorf("response missing record")
		}
		return env.Data.Record, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("duplicate mutation coalesced", zap.String("key", key))
	}
	rec := v.(*borrow.Record)
	if !rec.Consistent() {
		c.logger.Warn("server returned inconsistent record", zap.String("id", rec.ID))
	}
	return rec, nil
}
