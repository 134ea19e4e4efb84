package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				var err error
				email, err = prompt("Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				var err error
				password, err = prompt("Password: ")
				if err != nil {
					return err
				}
			}

			identity, err := session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			fmt.Printf("Signed in as %s (%s)\n", identity.Email, identity.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (prompted if omitted)")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")
	return cmd
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
