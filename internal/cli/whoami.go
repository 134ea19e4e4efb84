package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity, as verified by the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := restoreSession(cmd); err != nil {
				return err
			}

			identity, ok := session.Current()
			if !ok {
				return fmt.Errorf("not signed in (run 'payrollctl login')")
			}

			fmt.Printf("Account: %s\n", identity.AccountID)
			fmt.Printf("Email:   %s\n", identity.Email)
			fmt.Printf("Role:    %s\n", identity.Role)
			if session.Can(domain.CapabilityAdmin) {
				fmt.Println("Admin:   yes")
			}
			return nil
		},
	}
}
