package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
)

func newWatchCmd() *cobra.Command {
	var (
		sport    string
		date     string
		interval int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically re-fetch court data until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %d", interval)
			}

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

			ctx := cmd.Context()
			ticker := time.NewTicker(time.Duration(interval) * time.Second)
			defer ticker.Stop()

			for {
				res, err := a.fetch(ctx, parsedDate, sportFilter)
				if err != nil {
					a.log.Errorw("fetch failed", "error", err)
				} else {
					fmt.Fprintf(os.Stdout, "\n[%s] %d courts on %s\n",
						time.Now().Format("15:04:05"), len(res.Courts), parsedDate)
					display.CourtsTable(os.Stdout, res.Courts)
				}

				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	cmd.Flags().IntVar(&interval, "interval", 300, "Seconds between fetches")
	return cmd
}
