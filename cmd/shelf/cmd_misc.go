package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"libshelf/internal/activity"
	"libshelf/internal/assistant"
	"libshelf/internal/borrow"

	"github.com/spf13/cobra"
)

var visitHours float64

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Show your library-hours badge tier",
	RunE:  runBadge,
}

var visitCmd = &cobra.Command{
	Use:   "visit",
	Short: "Record time spent in the library",
	RunE:  runVisit,
}

var chatCmd = &cobra.Command{
	Use:   "chat [question]",
	Short: "Ask the librarian assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or set the display theme",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func runBadge(cmd *cobra.Command, args []string) error {
	tracker, err := activity.NewTracker(cfg.DataDir)
	if err != nil {
		return err
	}

	hours := tracker.TotalHours()
	badge := borrow.BadgeForHours(hours)
	fmt.Printf("%s — %.1f hours in the library\n", badge.Style.Render(badge.Name), hours)
	return nil
}

func runVisit(cmd *cobra.Command, args []string) error {
	if visitHours <= 0 {
		return fmt.Errorf("--hours must be positive")
	}
	tracker, err := activity.NewTracker(cfg.DataDir)
	if err != nil {
		return err
	}

	end := time.Now()
	start := end.Add(-time.Duration(visitHours * float64(time.Hour)))
	if err := tracker.Record(start, end); err != nil {
		return err
	}

	badge := borrow.BadgeForHours(tracker.TotalHours())
	fmt.Printf("Recorded %.1f hours. Total %.1f — %s\n",
		visitHours, tracker.TotalHours(), badge.Style.Render(badge.Name))
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("chat is disabled: set llm.api_key in %s or GEMINI_API_KEY", configPath)
	}

	ctx := context.Background()
	helper, err := assistant.New(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		return err
	}

	answer, err := helper.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Println(answer)
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		fmt.Println(a.session.Theme())
		return nil
	}
	if err := a.session.SetTheme(args[0]); err != nil {
		return err
	}
	fmt.Printf("Theme set to %s.\n", args[0])
	return nil
}

func init() {
	visitCmd.Flags().Float64Var(&visitHours, "hours", 0, "hours to record (required)")
}
