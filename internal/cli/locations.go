package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
)

func newLocationsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "locations",
		Short: "List distinct court locations for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			parsedDate, err := a.resolveDate(date)
			if err != nil {
				return err
			}

			res, err := a.fetch(cmd.Context(), parsedDate, "")
			if err != nil {
				return err
			}

			seen := make(map[string]bool, len(res.Courts))
			locations := make([]string, 0, len(res.Courts))
			for _, c := range res.Courts {
				if seen[c.Location] {
					continue
				}
				seen[c.Location] = true
				locations = append(locations, c.Location)
			}

			display.NameList(os.Stdout, "Locations", locations)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	return cmd
}
