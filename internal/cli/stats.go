package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show statistics about stored court data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.Stats()
			if err != nil {
				return err
			}

			display.StatsBlock(os.Stdout, stats)
			return nil
		},
	}
}
