package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/store"
	"github.com/tessro/heimdall/internal/wizard"
)

var authPasswordStdin bool

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in to the backend",
	Long: `Sign in to the Heimdall backend. The session cookie is saved locally
and reused by later commands.

Examples:
  heimdall login alice
  echo "$PASSWORD" | heimdall login alice --password-stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd, args, false)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup [username]",
	Short: "Create an account and sign in",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAuth(cmd, args, true)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	RunE:  runLogout,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().BoolVar(&authPasswordStdin, "password-stdin", false, "read the password from stdin")
	}
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runAuth(cmd *cobra.Command, args []string, signup bool) error {
	ctx := cmdContext(cmd)

	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	creds, err := promptCredentials(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	action := "Logged in"
	if signup {
		action = "Signed up"
		err = rt.client.Signup(ctx, creds)
	} else {
		err = rt.client.Login(ctx, creds)
	}
	if err != nil {
		return err
	}

	sess := store.NewSession(rt.client.BaseURL(), creds.Username, rt.client.Cookies())
	if err := rt.sessions.Save(sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	logger.Debug("session saved", "user", creds.Username, "cookies", len(sess.Cookies))

	if JSONOutput() {
		return printJSON(map[string]string{
			"status":   strings.ToLower(strings.ReplaceAll(action, " ", "_")),
			"username": creds.Username,
		})
	}
	fmt.Printf("✓ %s as %s\n", action, creds.Username)
	return nil
}

// promptCredentials fills in whatever the arguments did not provide.
func promptCredentials(args []string, stdin io.Reader) (api.Credentials, error) {
	var creds api.Credentials
	if len(args) > 0 {
		creds.Username = args[0]
	}

	if authPasswordStdin {
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return creds, fmt.Errorf("failed to read password: %w", err)
		}
		creds.Password = strings.TrimRight(line, "\r\n")
	}

	if creds.Username != "" && creds.Password != "" {
		return creds, nil
	}
	if !wizard.IsTerminal() {
		return creds, fmt.Errorf("username and password are required")
	}

	var fields []huh.Field
	if creds.Username == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&creds.Username))
	}
	if creds.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).WithTheme(formTheme()).Run(); err != nil {
		return creds, fmt.Errorf("login cancelled: %w", err)
	}
	return creds, nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	rt, err := openEnv()
	if err != nil {
		return err
	}
	defer rt.Close()

	sess, _ := rt.sessions.Load()
	if err := rt.sessions.Delete(); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	if JSONOutput() {
		return printJSON(map[string]string{"status": "logged_out"})
	}
	if sess == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Println("✓ Logged out")
	return nil
}
