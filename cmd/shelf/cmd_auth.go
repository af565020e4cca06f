package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var loginRole string

// loginCmd signs in against the backend and stores the session locally.
var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in to the library backend",
	Long: `Authenticates against the library backend and stores the bearer
token and user profile locally. The password is read from the
LIBSHELF_PASSWORD environment variable or prompted on stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	email := args[0]
	password := os.Getenv("LIBSHELF_PASSWORD")
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = strings.TrimSpace(line)
	}

	res, err := a.client.Login(context.Background(), email, password, loginRole)
	if err != nil {
		return err
	}
	if err := a.session.SetToken(res.Token); err != nil {
		return err
	}
	if err := a.session.SetUser(res.User); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", res.User.Name, res.User.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.Clear(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	u, err := a.requireUser()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginRole, "role", "student", "role to sign in as (student or admin)")
}
