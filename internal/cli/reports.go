package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/evento-nomina/payroll-system/internal/client"
	"github.com/evento-nomina/payroll-system/internal/core/domain"
)

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "File and review work-session reports",
	}
	cmd.AddCommand(
		newReportsSubmitCmd(),
		newReportsListCmd(),
		newReportsApproveCmd(),
		newReportsRejectCmd(),
	)
	return cmd
}

func newReportsSubmitCmd() *cobra.Command {
	var (
		eventName, location  string
		startStr, endStr     string
		eventStart, eventEnd string
		hourlyRate           float64
		notes                string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "File a work session for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := restoreSession(cmd); err != nil {
				return err
			}

			start, err := time.Parse(time.RFC3339, startStr)
			if err != nil {
				return fmt.Errorf("parse --start: %w", err)
			}
			end, err := time.Parse(time.RFC3339, endStr)
			if err != nil {
				return fmt.Errorf("parse --end: %w", err)
			}
			// The event window defaults to the worked interval.
			evStart, evEnd := start, end
			if eventStart != "" {
				if evStart, err = time.Parse(time.RFC3339, eventStart); err != nil {
					return fmt.Errorf("parse --event-start: %w", err)
				}
			}
			if eventEnd != "" {
				if evEnd, err = time.Parse(time.RFC3339, eventEnd); err != nil {
					return fmt.Errorf("parse --event-end: %w", err)
				}
			}

			// A fresh key per invocation; the transport may retry, the
			// server files the session once.
			key := uuid.NewString()
			filed, err := api.SubmitReport(cmd.Context(), session.Token(), key, client.SubmitReportRequest{
				Event: domain.Event{
					Name:     eventName,
					Location: location,
					StartsAt: evStart,
					EndsAt:   evEnd,
				},
				StartTime:  start,
				EndTime:    end,
				HourlyRate: hourlyRate,
				Notes:      notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Report %s filed: %.2f hours at %.2f/h (%s)\n",
				filed.ID, filed.TotalHours, filed.HourlyRate, filed.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventName, "event", "", "event name")
	cmd.Flags().StringVar(&location, "location", "", "event location")
	cmd.Flags().StringVar(&startStr, "start", "", "work start time (RFC3339)")
	cmd.Flags().StringVar(&endStr, "end", "", "work end time (RFC3339)")
	cmd.Flags().StringVar(&eventStart, "event-start", "", "event start time (defaults to --start)")
	cmd.Flags().StringVar(&eventEnd, "event-end", "", "event end time (defaults to --end)")
	cmd.Flags().Float64Var(&hourlyRate, "rate", 0, "hourly rate")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	_ = cmd.MarkFlagRequired("rate")
	return cmd
}

func newReportsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all work sessions (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := restoreSession(cmd); err != nil {
				return err
			}

			sessions, err := api.ListReports(cmd.Context(), session.Token())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMPLOYEE\tEVENT\tHOURS\tRATE\tSTATUS")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
					s.ID, s.EmployeeName, s.Event.Name, s.TotalHours, s.HourlyRate, s.Status)
			}
			return w.Flush()
		},
	}
}

func newReportsApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending work session (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := restoreSession(cmd); err != nil {
				return err
			}
			s, err := api.ApproveReport(cmd.Context(), session.Token(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Report %s is now %s\n", s.ID, s.Status)
			return nil
		},
	}
}

func newReportsRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending work session (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := restoreSession(cmd); err != nil {
				return err
			}
			s, err := api.RejectReport(cmd.Context(), session.Token(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Report %s is now %s\n", s.ID, s.Status)
			return nil
		},
	}
}
