package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
	"github.com/yorch/doral-courts/internal/filter"
)

func newSlotsCmd() *cobra.Command {
	var (
		sport    string
		date     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List available time slots per court (always fetches fresh data)",
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

			res, err := a.fetch(cmd.Context(), parsedDate, sportFilter)
			if err != nil {
				return err
			}

			courts := res.Courts
			if location != "" {
				courts = filter.Filter{Locations: []string{location}}.Apply(courts)
			}

			display.AvailableSlotsTable(os.Stdout, courts, parsedDate, res.LastRequestURL())
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	cmd.Flags().StringVar(&location, "location", "", `Filter by location (e.g. "Doral Central Park")`)
	return cmd
}
