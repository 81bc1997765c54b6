package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/display"
	"github.com/yorch/doral-courts/internal/filter"
)

func newListCmd() *cobra.Command {
	var (
		sport  string
		status string
		date   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courts with optional filters (always fetches fresh data)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			parsedDate, err := a.resolveDate(date)
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

			res, err := a.fetch(cmd.Context(), parsedDate, sportFilter)
			if err != nil {
				return err
			}

			courts := res.Courts
			if statusFilter != "" {
				courts = filter.Filter{Statuses: []court.Status{court.Status(statusFilter)}}.Apply(courts)
			}

			display.CourtsTable(os.Stdout, courts)
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by availability (available, booked, no-schedule)")
	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	return cmd
}
