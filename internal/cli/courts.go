package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
)

func newCourtsCmd() *cobra.Command {
	var (
		sport string
		date  string
	)

	cmd := &cobra.Command{
		Use:   "courts",
		Short: "List court names for a date",
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

			seen := make(map[string]bool, len(res.Courts))
			names := make([]string, 0, len(res.Courts))
			for _, c := range res.Courts {
				if seen[c.Name] {
					continue
				}
				seen[c.Name] = true
				names = append(names, c.Name)
			}

			display.NameList(os.Stdout, "Courts", names)
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	return cmd
}
