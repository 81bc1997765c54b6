package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/display"
	"github.com/yorch/doral-courts/internal/filter"
)

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Save and replay named search queries",
	}
	cmd.AddCommand(newQuerySaveCmd(), newQueryRunCmd(), newQueryListCmd(), newQueryRemoveCmd())
	return cmd
}

func newQuerySaveCmd() *cobra.Command {
	var (
		sport    string
		status   string
		date     string
		location string
	)

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given filters under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			// Validate before persisting so a bad query is never saved.
			if _, err := a.resolveSport(sport); err != nil {
				return err
			}
			if _, err := normalizeStatus(status); err != nil {
				return err
			}

			params := map[string]string{}
			if sport != "" {
				params["sport"] = sport
			}
			if status != "" {
				params["status"] = status
			}
			if date != "" {
				params["date"] = date
			}
			if location != "" {
				params["location"] = location
			}

			if err := a.cfg.SaveQuery(args[0], params); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Saved query %q\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by availability (available, booked, no-schedule)")
	cmd.Flags().StringVar(&date, "date", "", "Date to check (MM/DD/YYYY, today, tomorrow, yesterday, +N, -N)")
	cmd.Flags().StringVar(&location, "location", "", "Filter by location")
	return cmd
}

func newQueryRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "Fetch court data using a saved query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			params, err := a.cfg.Query(args[0])
			if err != nil {
				return err
			}
			if params == nil {
				queries, err := a.cfg.Queries()
				if err != nil {
					return err
				}
				names := make([]string, 0, len(queries))
				for name := range queries {
					names = append(names, name)
				}
				sort.Strings(names)
				if len(names) == 0 {
					return fmt.Errorf("no saved query named %q (none saved yet)", args[0])
				}
				return fmt.Errorf("no saved query named %q (saved: %s)", args[0], strings.Join(names, ", "))
			}

			parsedDate, err := a.resolveDate(params["date"])
			if err != nil {
				return err
			}
			sportFilter, err := a.resolveSport(params["sport"])
			if err != nil {
				return err
			}
			statusFilter, err := normalizeStatus(params["status"])
			if err != nil {
				return err
			}

			res, err := a.fetch(cmd.Context(), parsedDate, sportFilter)
			if err != nil {
				return err
			}

			courts := res.Courts
			crit := filter.Filter{}
			if statusFilter != "" {
				crit.Statuses = []court.Status{court.Status(statusFilter)}
			}
			if loc := params["location"]; loc != "" {
				crit.Locations = []string{loc}
			}
			courts = crit.Apply(courts)

			display.CourtsTable(os.Stdout, courts)
			return nil
		},
	}
}

func newQueryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			queries, err := a.cfg.Queries()
			if err != nil {
				return err
			}
			if len(queries) == 0 {
				fmt.Fprintln(os.Stdout, `No saved queries yet. Save one with "doral-courts query save <name>".`)
				return nil
			}

			names := make([]string, 0, len(queries))
			for name := range queries {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(os.Stdout, "%s:\n", name)
				params := queries[name]
				keys := make([]string, 0, len(params))
				for k := range params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(os.Stdout, "  %s: %s\n", k, params[k])
				}
			}
			return nil
		},
	}
}

func newQueryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a saved query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			removed, err := a.cfg.RemoveQuery(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(os.Stdout, "No saved query named %q\n", args[0])
				return nil
			}
			fmt.Fprintf(os.Stdout, "Removed query %q\n", args[0])
			return nil
		},
	}
}
