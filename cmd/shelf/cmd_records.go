package main

import (
	"context"
	"fmt"
	"time"

	"libshelf/internal/api"
	"libshelf/internal/borrow"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	recordsAll    bool
	borrowFlags   api.BorrowInput
	borrowDueDays int
	returnCond    string
	returnNotes   string
	paymentMethod string
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List borrow records",
	Long: `Lists your borrow records, or every record with --all (admin).
Active records show the due date and, for overdue ones, a local fine
estimate. The server's fine is authoritative; the estimate is only shown
until it arrives.`,
	RunE: runRecords,
}

var borrowCmd = &cobra.Command{
	Use:   "borrow [book-id]",
	Short: "Borrow a book (admin issues on a student's behalf)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBorrow,
}

var returnCmd = &cobra.Command{
	Use:   "return [record-id]",
	Short: "Return a borrowed book",
	Args:  cobra.ExactArgs(1),
	RunE:  runReturn,
}

var extendCmd = &cobra.Command{
	Use:   "extend [record-id] [days]",
	Short: "Extend a record's due date by N days",
	Args:  cobra.ExactArgs(2),
	RunE:  runExtend,
}

var fineCmd = &cobra.Command{
	Use:   "fine",
	Short: "Settle or waive fines (admin)",
}

var finePaidCmd = &cobra.Command{
	Use:   "paid [record-id]",
	Short: "Mark a record's fine as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runFinePaid,
}

var fineWaiveCmd = &cobra.Command{
	Use:   "waive [record-id]",
	Short: "Waive a record's fine",
	Args:  cobra.ExactArgs(1),
	RunE:  runFineWaive,
}

var (
	overdueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e53935"))
	returnedStyle = lipgloss.NewStyle().Faint(true)
)

func runRecords(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	scope := api.ScopeSelf
	if recordsAll {
		scope = api.ScopeAll
	}
	records, err := a.client.ListRecords(context.Background(), scope)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No borrow records.")
		return nil
	}

	now := time.Now()
	for _, r := range records {
		printRecord(r, now)
	}
	return nil
}

func printRecord(r *borrow.Record, now time.Time) {
	fmt.Println(formatRecord(r, now))
}

func formatRecord(r *borrow.Record, now time.Time) string {
	status := string(r.Status)
	switch r.Status {
	case borrow.StatusOverdue:
		status = overdueStyle.Render(status)
	case borrow.StatusReturned:
		status = returnedStyle.Render(status)
	}

	out := fmt.Sprintf("%s  %-30s  %s  due %s", r.ID, r.Book.Title, status, r.DueDate.Format("2006-01-02"))
	if r.ReturnDate != nil {
		out += fmt.Sprintf("  returned %s", r.ReturnDate.Format("2006-01-02"))
	}
	// A settled fine (paid or waived) never resurfaces as an estimate;
	// the server's verdict wins over the local computation.
	settled := r.PaymentStatus == borrow.PaymentPaid || r.PaymentStatus == borrow.PaymentWaived
	if r.Fine > 0 {
		out += fmt.Sprintf("  fine %.2f (%s)", r.Fine, r.PaymentStatus)
	} else if est := borrow.EstimateFine(r.DueDate, r.Status, settled, now); est > 0 {
		out += fmt.Sprintf("  fine ~%.2f (estimate)", est)
	}
	return out
}

func runBorrow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.requireUser()
	if err != nil {
		return err
	}

	in := borrowFlags
	in.BookID = args[0]
	in.DueDate = time.Now().AddDate(0, 0, borrowDueDays)
	if in.IssuedBy == "" {
		in.IssuedBy = u.Email
	}

	// Advisory pre-check; the backend re-validates and its verdict wins.
	if d := preCheckBorrow(a, in); !d.Allowed {
		return fmt.Errorf("%s", d.Message)
	}

	rec, err := a.client.Borrow(context.Background(), in)
	if err != nil {
		return err
	}
	fmt.Println("Borrowed:")
	printRecord(rec, time.Now())
	return nil
}

// preCheckBorrow runs the client-side eligibility chain with whatever
// state it can fetch. Any fetch failure skips the check rather than
// blocking the action; eligibility is the server's call.
func preCheckBorrow(a *app, in api.BorrowInput) borrow.Decision {
	ctx := context.Background()

	records, err := a.client.ListRecords(ctx, api.ScopeSelf)
	if err != nil {
		return borrow.Decision{Allowed: true}
	}
	books, err := a.client.ListBooks(ctx, "")
	if err != nil {
		return borrow.Decision{Allowed: true}
	}
	var book *borrow.Book
	for _, b := range books {
		if b.ID == in.BookID {
			book = b
			break
		}
	}
	if book == nil {
		return borrow.Decision{Allowed: true}
	}

	var student borrow.Student
	for _, r := range records {
		if r.Student.ID == in.StudentID {
			student = r.Student
			break
		}
	}

	return borrow.CanBorrow(student, *book, len(borrow.Active(records)), cfg.Policy.MaxBooks)
}

func runReturn(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	rec, err := a.client.Return(context.Background(), args[0], api.ReturnInput{
		ReturnCondition: returnCond,
		ReturnNotes:     returnNotes,
	})
	if err != nil {
		return err
	}
	fmt.Println("Returned:")
	printRecord(rec, time.Now())
	return nil
}

func runExtend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	var days int
	if _, err := fmt.Sscanf(args[1], "%d", &days); err != nil || days < 1 {
		return fmt.Errorf("days must be a positive number, got %q", args[1])
	}

	rec, err := a.client.Extend(context.Background(), args[0], time.Now().AddDate(0, 0, days))
	if err != nil {
		return err
	}
	fmt.Println("Extended:")
	printRecord(rec, time.Now())
	return nil
}

func runFinePaid(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	rec, err := a.client.MarkFinePaid(context.Background(), args[0], paymentMethod)
	if err != nil {
		return err
	}
	fmt.Printf("Fine settled (%s):\n", paymentMethod)
	printRecord(rec, time.Now())
	return nil
}

func runFineWaive(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}

	rec, err := a.client.WaiveFine(context.Background(), args[0])
	if err != nil {
		return err
	}
	fmt.Println("Fine waived:")
	printRecord(rec, time.Now())
	return nil
}

func init() {
	recordsCmd.Flags().BoolVar(&recordsAll, "all", false, "list every record (admin)")

	borrowCmd.Flags().StringVar(&borrowFlags.StudentID, "student", "", "student ID the book is issued to")
	borrowCmd.Flags().IntVar(&borrowDueDays, "days", 14, "loan period in days")
	borrowCmd.Flags().StringVar(&borrowFlags.ConditionAtIssue, "condition", "good", "book condition at issue")
	borrowCmd.Flags().StringVar(&borrowFlags.Notes, "notes", "issued via shelf", "issue notes")
	borrowCmd.Flags().StringVar(&borrowFlags.IssuedBy, "issued-by", "", "issuer (defaults to the signed-in user)")

	returnCmd.Flags().StringVar(&returnCond, "condition", "good", "book condition at return")
	returnCmd.Flags().StringVar(&returnNotes, "notes", "", "return notes")

	finePaidCmd.Flags().StringVar(&paymentMethod, "method", "cash", "payment method")
}
