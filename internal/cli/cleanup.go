package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCleanupCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete stored court data older than the given number of days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("days must not be negative, got %d", days)
			}

			a, err := newApp()
			if err != nil {
				return err
			}

			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			removed, err := db.ClearOld(days)
			if err != nil {
				return err
			}

			fmt.Fprintf(os.Stdout, "Removed %d court records older than %d days\n", removed, days)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "Remove records last updated more than this many days ago")
	return cmd
}
