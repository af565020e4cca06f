package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	uploadTitle   string
	bookmarkTitle string
)

var booksCmd = &cobra.Command{
	Use:   "books [query]",
	Short: "Browse the catalog and look up rack locations",
	RunE:  runBooks,
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage your saved books (stored locally)",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add [book-id]",
	Short: "Save a book to your bookmark list",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkAdd,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "rm [book-id]",
	Short: "Remove a book from your bookmark list",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkRemove,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your bookmarks",
	RunE:  runBookmarkList,
}

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a digital resource (admin)",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

func runBooks(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	query := strings.Join(args, " ")
	books, err := a.client.ListBooks(context.Background(), query)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		fmt.Println("No books found.")
		return nil
	}
	for _, b := range books {
		avail := "available"
		if !b.Available || b.CopiesAvailable <= 0 {
			avail = "unavailable"
		}
		fmt.Printf("%s  %-35s  rack %-8s  %d copies  %s\n", b.ID, b.Title, b.Rack, b.CopiesAvailable, avail)
	}
	return nil
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.requireUser()
	if err != nil {
		return err
	}
	if err := a.store.AddBookmark(u.Email, args[0], bookmarkTitle); err != nil {
		return err
	}
	fmt.Println("Bookmarked.")
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.requireUser()
	if err != nil {
		return err
	}
	if err := a.store.RemoveBookmark(u.Email, args[0]); err != nil {
		return err
	}
	fmt.Println("Removed.")
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.requireUser()
	if err != nil {
		return err
	}
	bookmarks, err := a.store.Bookmarks(u.Email)
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks.")
		return nil
	}
	for _, b := range bookmarks {
		fmt.Printf("%s  %s  (saved %s)\n", b.BookID, b.Title, b.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.requireUser(); err != nil {
		return err
	}
	id, err := a.client.UploadResource(context.Background(), uploadTitle, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded resource %s\n", id)
	return nil
}

func init() {
	bookmarkAddCmd.Flags().StringVar(&bookmarkTitle, "title", "", "book title to store with the bookmark")
	uploadCmd.Flags().StringVar(&uploadTitle, "title", "", "resource title (required)")
}
