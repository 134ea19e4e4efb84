// Package cli implements the payrollctl command line client.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evento-nomina/payroll-system/internal/client"
)

var (
	flagServer string
	flagDebug  bool

	log     zerolog.Logger
	api     *client.Client
	session *client.Session
)

// defaultServer returns the default server URL, checking PAYROLL_SERVER first.
func defaultServer() string {
	if s := os.Getenv("PAYROLL_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for the payrollctl CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "payrollctl",
		Short: "payrollctl — payroll tracking for event staff",
		Long:  "payrollctl signs in to the payroll service, files work-session reports, and reviews them.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.WarnLevel
			if flagDebug {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

			store, err := client.NewFileTokenStore()
			if err != nil {
				return fmt.Errorf("init token store: %w", err)
			}
			api = client.New(flagServer, log)
			session = client.NewSession(api, store, log)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "payroll server URL (or PAYROLL_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newReportsCmd(),
	)

	return root
}

// restoreSession resumes the persisted session, failing with a hint when
// the user is signed out.
func restoreSession(cmd *cobra.Command) error {
	restored, err := session.Restore(cmd.Context())
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !restored {
		return fmt.Errorf("not signed in (run 'payrollctl login')")
	}
	return nil
}
