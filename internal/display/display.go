// Package display renders court data as plain-text tables and lists. It
// only reads courts, never mutates them, and writes to any io.Writer so
// output is testable.
package display

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/yorch/doral-courts/internal/analysis"
	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/store"
)

// CourtsTable renders one row per court with its slot summary.
func CourtsTable(w io.Writer, courts []court.Court) {
	if len(courts) == 0 {
		fmt.Fprintln(w, "No courts found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COURT NAME\tSPORT\tDATE\tTIME SLOTS\tSTATUS\tCAPACITY\tPRICE")
	for _, c := range courts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			c.Name, c.SportType, c.Date, c.SlotSummary(),
			c.AvailabilityStatus, c.Capacity, c.PriceOrDefault("N/A"))
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d courts\n", len(courts))
}

// AvailableSlotsTable renders one row per available slot across all
// courts, with the data source noted when known.
func AvailableSlotsTable(w io.Writer, courts []court.Court, date, sourceURL string) {
	fmt.Fprintf(w, "Available time slots for %s\n", date)
	if sourceURL != "" {
		fmt.Fprintf(w, "Data source: %s\n", sourceURL)
	}
	fmt.Fprintln(w)

	total := 0
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COURT\tLOCATION\tSPORT\tSTART\tEND\tCAPACITY\tPRICE")
	for _, c := range courts {
		for _, slot := range c.AvailableSlots() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				c.Name, c.Location, c.SportType,
				slot.StartTime, slot.EndTime, c.Capacity, c.PriceOrDefault("N/A"))
			total++
		}
	}

	if total == 0 {
		fmt.Fprintf(w, "No available time slots found for %s.\n", date)
		return
	}
	tw.Flush()
	fmt.Fprintf(w, "\nTotal: %d available slots\n", total)
}

// CourtDetails renders each court with its full slot schedule.
func CourtDetails(w io.Writer, courts []court.Court) {
	if len(courts) == 0 {
		fmt.Fprintln(w, "No courts found.")
		return
	}

	for i, c := range courts {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", c.Name, c.SportType)
		fmt.Fprintf(w, "  Location: %s\n", c.Location)
		fmt.Fprintf(w, "  Date:     %s\n", c.Date)
		fmt.Fprintf(w, "  Status:   %s (%s)\n", c.AvailabilityStatus, c.SlotSummary())
		fmt.Fprintf(w, "  Capacity: %s\n", c.Capacity)
		fmt.Fprintf(w, "  Price:    %s\n", c.PriceOrDefault("N/A"))
		if len(c.TimeSlots) > 0 {
			fmt.Fprintln(w, "  Slots:")
			for _, slot := range c.TimeSlots {
				fmt.Fprintf(w, "    %s - %s\t%s\n", slot.StartTime, slot.EndTime, slot.Status)
			}
		}
	}
}

// StatsBlock renders database statistics.
func StatsBlock(w io.Writer, stats *store.Stats) {
	fmt.Fprintf(w, "Total court records: %d\n", stats.TotalCourts)

	if len(stats.SportCounts) > 0 {
		fmt.Fprintln(w, "\nBy sport:")
		for _, sport := range []string{string(court.SportTennis), string(court.SportPickleball)} {
			if n, ok := stats.SportCounts[sport]; ok {
				fmt.Fprintf(w, "  %s: %d\n", sport, n)
			}
		}
	}

	if len(stats.AvailabilityCounts) > 0 {
		fmt.Fprintln(w, "\nBy status:")
		for _, status := range []string{
			string(court.StatusAvailable), string(court.StatusFullyBooked), string(court.StatusNoSchedule),
		} {
			if n, ok := stats.AvailabilityCounts[status]; ok {
				fmt.Fprintf(w, "  %s: %d\n", status, n)
			}
		}
	}

	if stats.LastUpdated != nil {
		fmt.Fprintf(w, "\nLast updated: %s\n", stats.LastUpdated.Format("2006-01-02 15:04:05"))
	}
}

// VelocityBlock renders a booking-velocity report: headline figures plus
// the ten fastest transitions.
func VelocityBlock(w io.Writer, report *analysis.VelocityReport) {
	fmt.Fprintln(w, "Booking velocity")
	if len(report.Transitions) == 0 {
		fmt.Fprintln(w, "  No booking transitions observed yet; keep watching to collect history.")
		return
	}

	fastest, _ := report.Fastest()
	slowest, _ := report.Slowest()
	fmt.Fprintf(w, "  Transitions observed: %d\n", len(report.Transitions))
	fmt.Fprintf(w, "  Average time to book: %s\n", formatDuration(report.Average))
	fmt.Fprintf(w, "  Fastest: %s (%s on %s at %s)\n",
		formatDuration(fastest.Duration), fastest.Court, fastest.Date, fastest.StartTime)
	fmt.Fprintf(w, "  Slowest: %s (%s on %s at %s)\n\n",
		formatDuration(slowest.Duration), slowest.Court, slowest.Date, slowest.StartTime)

	top := report.Transitions
	if len(top) > 10 {
		top = top[:10]
	}
	fmt.Fprintln(w, "Fastest bookings:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COURT\tDATE\tDAY\tTIME\tTIME TO BOOK")
	for _, tr := range top {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			tr.Court, tr.Date, tr.Day, tr.StartTime, formatDuration(tr.Duration))
	}
	tw.Flush()
}

// DayPatternsTable renders availability tallies by weekday.
func DayPatternsTable(w io.Writer, patterns []analysis.DayPattern) {
	fmt.Fprintln(w, "Availability by day of week")
	if len(patterns) == 0 {
		fmt.Fprintln(w, "  No stored data in the analysis window.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DAY\tAVAILABLE\tFULLY BOOKED\tAVAILABILITY")
	for _, p := range patterns {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", p.Day, p.Available, p.Booked, p.AvailabilityPct())
	}
	tw.Flush()
}

func formatDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}

// SlotsSummary renders per-court slot availability ratios with an overall
// tally.
func SlotsSummary(w io.Writer, courts []court.Court, sourceURL string) {
	fmt.Fprintf(w, "Time slots summary (%d courts)\n", len(courts))
	if sourceURL != "" {
		fmt.Fprintf(w, "Data source: %s\n", sourceURL)
	}
	fmt.Fprintln(w)

	totalSlots := 0
	availableSlots := 0
	for _, c := range courts {
		if len(c.TimeSlots) == 0 {
			continue
		}
		available := len(c.AvailableSlots())
		totalSlots += len(c.TimeSlots)
		availableSlots += available
		pct := float64(available) / float64(len(c.TimeSlots)) * 100
		fmt.Fprintf(w, "%s\n  %d/%d slots available (%.1f%%)\n", c.Name, available, len(c.TimeSlots), pct)
	}

	overall := 0.0
	if totalSlots > 0 {
		overall = float64(availableSlots) / float64(totalSlots) * 100
	}
	fmt.Fprintf(w, "\nTotal time slots: %d\nAvailable slots: %d\nBooked slots: %d\nOverall availability: %.1f%%\n",
		totalSlots, availableSlots, totalSlots-availableSlots, overall)
}

// NameList renders a simple titled list.
func NameList(w io.Writer, title string, names []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(names))
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
}
