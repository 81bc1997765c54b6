package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yorch/doral-courts/internal/analysis"
	"github.com/yorch/doral-courts/internal/display"
	"github.com/yorch/doral-courts/internal/filter"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		sport     string
		location  string
		courtName string
		timeSlot  string
		dayOfWeek string
		days      int
		mode      string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze booking velocity and availability patterns from stored history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("days must be positive, got %d", days)
			}
			switch mode {
			case "velocity", "availability", "summary":
			default:
				return fmt.Errorf("unknown mode %q (expected velocity, availability, or summary)", mode)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			sportFilter, err := a.resolveSport(sport)
			if err != nil {
				return err
			}

			opts := analysis.Options{
				TimeSlot: timeSlot,
				Since:    time.Now().AddDate(0, 0, -days),
				Until:    time.Now(),
			}
			if dayOfWeek != "" {
				day, err := analysis.ParseWeekday(dayOfWeek)
				if err != nil {
					return err
				}
				opts.Day = &day
			}

			db, err := a.openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			fmt.Fprintf(os.Stdout, "Court booking analysis, %s to %s\n\n",
				opts.Since.Format("2006-01-02"), opts.Until.Format("2006-01-02"))

			if mode == "velocity" || mode == "summary" {
				observations, err := db.SlotObservations(sportFilter, location, courtName)
				if err != nil {
					return err
				}
				report := analysis.Velocity(observations, opts)
				display.VelocityBlock(os.Stdout, &report)
				fmt.Fprintln(os.Stdout)
			}

			if mode == "availability" || mode == "summary" {
				courts, err := db.Query(sportFilter, "", "")
				if err != nil {
					return err
				}
				crit := filter.Filter{}
				if location != "" {
					crit.Locations = []string{location}
				}
				if courtName != "" {
					crit.Names = []string{courtName}
				}
				display.DayPatternsTable(os.Stdout, analysis.DayPatterns(crit.Apply(courts), opts))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sport, "sport", "", "Filter by sport type (tennis or pickleball)")
	cmd.Flags().StringVar(&location, "location", "", "Filter by location (substring match)")
	cmd.Flags().StringVar(&courtName, "court", "", "Filter by exact court name")
	cmd.Flags().StringVar(&timeSlot, "time-slot", "", `Filter by slot start time (e.g. "8:00 am")`)
	cmd.Flags().StringVar(&dayOfWeek, "day-of-week", "", "Filter by day of week (e.g. Friday)")
	cmd.Flags().IntVar(&days, "days", 30, "Days of history to analyze")
	cmd.Flags().StringVar(&mode, "mode", "summary", "Analysis mode (velocity, availability, summary)")
	return cmd
}
