package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
)

func newDataCmd() *cobra.Command {
	var (
		sport string
		date  string
		mode  string
	)

	cmd := &cobra.Command{
		Use:   "data",
		Short: "Show the full scraped dataset (always fetches fresh data)",
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

			switch mode {
			case "detailed":
				fmt.Fprintf(os.Stdout, "Court data for %s\nData source: %s\n\n",
					parsedDate, res.LastRequestURL())
				display.CourtDetails(os.Stdout, res.Courts)
			case "summary":
				display.SlotsSummary(os.Stdout, res.Courts, res.LastRequestURL())
			default:
				return fmt.Errorf("unknown mode %q (expected detailed or summary)", mode)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	cmd.Flags().StringVar(&mode, "mode", "detailed", "Display mode (detailed, summary)")
	return cmd
}
