package main

import (
	"fmt"
	"os"
	"path/filepath"

	"libshelf/internal/api"
	"libshelf/internal/config"
	"libshelf/internal/logging"
	"libshelf/internal/session"
	"libshelf/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Shared state built in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "shelf - university library client",
	Long: `shelf is a command-line client for the university library system.

It talks to the library backend over its REST API: sign in, browse the
catalog, borrow and return books, track due dates and fines, keep
bookmarks, and ask the librarian assistant questions.

The backend owns every record; shelf only sends actions and displays
whatever the server echoes back.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		level := cfg.Logging.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(logging.Options{
			Level:   level,
			Format:  cfg.Logging.Format,
			File:    cfg.Logging.File,
			DataDir: cfg.DataDir,
		})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// app bundles the pieces most commands need. Each RunE opens one and
// closes it when done.
type app struct {
	store   *store.LocalStore
	session *session.Session
	client  *api.Client
}

func newApp() (*app, error) {
	st, err := store.Open(filepath.Join(cfg.DataDir, "shelf.db"))
	if err != nil {
		return nil, err
	}
	sess := session.New(st)

	// An explicitly configured token (LIBSHELF_TOKEN or api.token in the
	// config file) wins over the stored session token.
	tokenSource := sess.Token
	if cfg.API.Token != "" {
		tokenSource = func() string { return cfg.API.Token }
	}

	client := api.New(cfg.API.BaseURL, cfg.APITimeout(),
		api.WithLogger(logger),
		api.WithTokenSource(tokenSource),
		api.WithUnauthorizedHook(func() {
			// Expired or missing token: drop the stored session so the
			// next command prompts for sign-in.
			if err := sess.Clear(); err != nil {
				logger.Warn("failed to clear session", zap.Error(err))
			}
			fmt.Fprintln(os.Stderr, "Session expired. Run `shelf login` to sign in again.")
		}),
	)

	return &app{store: st, session: sess, client: client}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("failed to close store", zap.Error(err))
	}
}

// requireUser returns the signed-in user or an instructive error.
func (a *app) requireUser() (*session.User, error) {
	u := a.session.User()
	if u == nil || a.session.Token() == "" {
		return nil, fmt.Errorf("not signed in; run `shelf login` first")
	}
	return u, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to config file")

	fineCmd.AddCommand(finePaidCmd)
	fineCmd.AddCommand(fineWaiveCmd)
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(borrowCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(extendCmd)
	rootCmd.AddCommand(fineCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(badgeCmd)
	rootCmd.AddCommand(visitCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(themeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
