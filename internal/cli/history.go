package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
)

func newHistoryCmd() *cobra.Command {
	var (
		sport  string
		status string
		date   string
		mode   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously fetched court data from the local database",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			sportFilter, err := a.resolveSport(sport)
			if err != nil {
				return err
			}
			statusFilter, err := normalizeStatus(status)
			if err != nil {
				return err
			}
			parsedDate := ""
			if date != "" {
				parsedDate, err = a.resolveDate(date)
				if err != nil {
					return err
				}
			}

			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			courts, err := db.Query(sportFilter, statusFilter, parsedDate)
			if err != nil {
				return err
			}
			if len(courts) == 0 {
				fmt.Fprintln(os.Stdout, "No stored court data matches the given filters.")
				return nil
			}

			switch mode {
			case "table":
				display.CourtsTable(os.Stdout, courts)
			case "detailed":
				display.CourtDetails(os.Stdout, courts)
			case "summary":
				counts := make(map[string]int)
				for _, c := range courts {
					counts[string(c.AvailabilityStatus)]++
				}
				fmt.Fprintf(os.Stdout, "%d courts stored\n", len(courts))
				for s, n := range counts {
					fmt.Fprintf(os.Stdout, "  %s: %d\n", s, n)
				}
			default:
				return fmt.Errorf("unknown mode %q (expected table, detailed, or summary)", mode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by availability (available, booked, no-schedule)")
	cmd.Flags().StringVar(&date, "date", "", "Filter by date (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	cmd.Flags().StringVar(&mode, "mode", "table", "Output mode (table, detailed, summary)")
	return cmd
}
