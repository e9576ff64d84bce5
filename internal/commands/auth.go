package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/session"
	"github.com/sea-catering/storefront/internal/storefront"
)

var loginCmd = &cobra.Command{
	Use:         "login",
	Short:       "Log in to the storefront",
	Long:        "Authenticate with the storefront API and remember the session for later commands.",
	Annotations: routed(storefront.RouteLogin),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			email = prompt(state.in, state.out, "Email: ")
		}
		if password == "" {
			var err error
			if password, err = readPassword(state.out); err != nil {
				return fmt.Errorf("error reading password: %w", err)
			}
		}

		resp, err := state.api.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		creds := session.Credentials{Token: resp.Token, CSRF: resp.CSRF, Email: email, ExpiresAt: resp.ExpiresAt}
		if err := state.session.SignIn(creds); err != nil {
			return fmt.Errorf("error saving session: %w", err)
		}

		profile, err := state.profiles.Resolve(cmd.Context())
		if err != nil {
			return fmt.Errorf("error loading profile: %w", err)
		}
		green.Fprintf(state.out, "Successfully logged in as %s (%s)\n", profile.FullName, profile.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out from the storefront",
	Long:  "Remove the saved session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := state.session.Clear(); err != nil {
			return fmt.Errorf("error during logout: %w", err)
		}
		fmt.Fprintln(state.out, "Successfully logged out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:         "register",
	Short:       "Create a customer account",
	Annotations: routed(storefront.RouteRegister),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if name == "" {
			name = prompt(state.in, state.out, "Full name: ")
		}
		if email == "" {
			email = prompt(state.in, state.out, "Email: ")
		}
		if password == "" {
			var err error
			if password, err = readPassword(state.out); err != nil {
				return fmt.Errorf("error reading password: %w", err)
			}
		}

		resp, err := state.api.Register(cmd.Context(), dto.RegisterRequest{FullName: name, Email: email, Password: password})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		green.Fprintf(state.out, "%s\n", resp.Message)
		fmt.Fprintln(state.out, "Run `seacatering login` to sign in.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show current user information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !state.session.Authenticated() {
			fmt.Fprintln(state.out, "You are not logged in")
			return nil
		}
		profile, err := state.profiles.Resolve(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(state.out, "Logged in as: %s <%s>\n", profile.FullName, profile.Email)
		fmt.Fprintf(state.out, "Role: %s\n", profile.Role)
		fmt.Fprintf(state.out, "Server: %s\n", state.api.BaseURL)
		return nil
	},
}

func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func readPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	b, err := term.ReadPassword(os.Stdin.Fd())
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func init() {
	loginCmd.Flags().String("email", "", "Account e-mail")
	loginCmd.Flags().String("password", "", "Account password (prompted when omitted)")

	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.Flags().String("email", "", "Account e-mail")
	registerCmd.Flags().String("password", "", "Password: at least 8 characters with upper and lower case, a digit and a symbol")
}
