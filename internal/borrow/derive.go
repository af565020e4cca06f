package borrow

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Single source of truth for the policy constants that the original
// screens duplicated with drifting values.
const (
	// FineRatePerDay is the currency units accrued per overdue day.
	FineRatePerDay = 1.0

	// DefaultMaxBooks is the active-borrow limit applied when the server
	// policy does not override it.
	DefaultMaxBooks = 3
)

// RestrictedCategories lists book categories first-year students may not
// borrow.
var RestrictedCategories = []string{"Competitive Exams"}

// EstimateFine returns the locally computed fine estimate for an overdue
// record: one FineRatePerDay per started overdue day, zero if the record
// is not overdue or the fine is already settled.
//
// This is a display estimate only. The authoritative fine is whatever
// the backend persists; wherever both are visible the server value wins.
func EstimateFine(dueDate time.Time, status Status, finePaid bool, now time.Time) float64 {
	if status != StatusOverdue || finePaid {
		return 0
	}
	days := math.Ceil(now.Sub(dueDate).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return days * FineRatePerDay
}

// Badge is a cosmetic tier derived from cumulative library hours.
type Badge struct {
	Name  string
	Style lipgloss.Style
}

// Badge tier thresholds, inclusive lower bounds, checked descending.
var badgeTiers = []struct {
	min   float64
	name  string
	color lipgloss.Color
}{
	{100, "Diamond", lipgloss.Color("#b9f2ff")},
	{75, "Platinum", lipgloss.Color("#e5e4e2")},
	{50, "Gold", lipgloss.Color("#FFC107")},
	{25, "Silver", lipgloss.Color("#c0c0c0")},
	{10, "Bronze", lipgloss.Color("#cd7f32")},
}

// BadgeForHours maps cumulative hours to a tier. First threshold at or
// below the value wins; anything under 10 hours is Beginner.
func BadgeForHours(hours float64) Badge {
	for _, t := range badgeTiers {
		if hours >= t.min {
			return Badge{Name: t.name, Style: lipgloss.NewStyle().Bold(true).Foreground(t.color)}
		}
	}
	return Badge{Name: "Beginner", Style: lipgloss.NewStyle().Faint(true)}
}

// Decision is the outcome of a client-side eligibility pre-check.
type Decision struct {
	Allowed bool
	Message string
}

// CanBorrow runs the advisory eligibility chain for borrowing a book.
// The first violated rule's message wins. The backend re-validates
// independently; a passing decision here guarantees nothing.
func CanBorrow(student Student, book Book, activeCount, maxBooks int) Decision {
	if maxBooks <= 0 {
		maxBooks = DefaultMaxBooks
	}
	if activeCount >= maxBooks {
		return Decision{Message: fmt.Sprintf("Maximum of %d borrowed books reached. Return a book before borrowing another.", maxBooks)}
	}
	if !book.Available {
		return Decision{Message: fmt.Sprintf("%q is not available for borrowing.", book.Title)}
	}
	if book.CopiesAvailable <= 0 {
		return Decision{Message: fmt.Sprintf("No copies of %q are left on the shelf.", book.Title)}
	}
	if student.Year == 1 {
		for _, cat := range book.Categories {
			for _, restricted := range RestrictedCategories {
				if cat == restricted {
					return Decision{Message: fmt.Sprintf("First-year students cannot borrow %s books.", restricted)}
				}
			}
		}
	}
	return Decision{Allowed: true}
}
