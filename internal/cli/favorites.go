package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/display"
	"github.com/yorch/doral-courts/internal/filter"
)

func newFavoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite courts",
	}
	cmd.AddCommand(newFavoritesListCmd(), newFavoritesAddCmd(), newFavoritesRemoveCmd())
	return cmd
}

func newFavoritesListCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show current availability for favorite courts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			favorites, err := a.cfg.Favorites()
			if err != nil {
				return err
			}
			if len(favorites) == 0 {
				fmt.Fprintln(os.Stdout, `No favorite courts yet. Add one with "doral-courts favorites add <name>".`)
				return nil
			}

			parsedDate, err := a.resolveDate(date)
			if err != nil {
				return err
			}

			res, err := a.fetch(cmd.Context(), parsedDate, "")
			if err != nil {
				return err
			}

			courts := filter.Filter{Names: favorites}.Apply(res.Courts)
			if len(courts) == 0 {
				fmt.Fprintf(os.Stdout, "No availability found for favorite courts on %s.\n", parsedDate)
				return nil
			}

			display.CourtsTable(os.Stdout, courts)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	return cmd
}

func newFavoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <court-name>",
		Short: "Add a court to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			added, err := a.cfg.AddFavorite(args[0])
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintf(os.Stdout, "%q is already a favorite\n", args[0])
				return nil
			}
			fmt.Fprintf(os.Stdout, "Added %q to favorites\n", args[0])
			return nil
		},
	}
}

func newFavoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <court-name>",
		Short: "Remove a court from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			removed, err := a.cfg.RemoveFavorite(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(os.Stdout, "%q is not a favorite\n", args[0])
				return nil
			}
			fmt.Fprintf(os.Stdout, "Removed %q from favorites\n", args[0])
			return nil
		},
	}
}
