// Package analysis computes booking-pattern reports over stored court
// history: how quickly slots flip from available to booked, and how
// availability distributes across the week. It is a pure in-memory layer;
// the store hands it observations and it hands the display layer reports.
package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/store"
)

// Options narrow an analysis to a slice of the history.
type Options struct {
	// TimeSlot keeps only slots with this exact start time ("8:00 am").
	TimeSlot string
	// Day keeps only dates falling on this weekday.
	Day *time.Weekday
	// Since and Until bound the slot dates (inclusive). Zero values leave
	// the corresponding side unbounded.
	Since time.Time
	Until time.Time
}

func (o Options) matchesDate(date string) (time.Time, bool) {
	t, err := time.Parse(court.SiteDateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	if o.Day != nil && t.Weekday() != *o.Day {
		return time.Time{}, false
	}
	if !o.Since.IsZero() && t.Before(o.Since) {
		return time.Time{}, false
	}
	if !o.Until.IsZero() && t.After(o.Until) {
		return time.Time{}, false
	}
	return t, true
}

// Transition is one observed available-to-booked flip of a slot.
type Transition struct {
	Court     string
	Location  string
	Sport     string
	Date      string
	Day       time.Weekday
	StartTime string
	// Duration is the time between the first sighting of the slot as
	// available and the first subsequent sighting as booked. It bounds the
	// real booking speed from above by the polling interval.
	Duration time.Duration
}

// VelocityReport summarizes observed booking transitions, fastest first.
type VelocityReport struct {
	Transitions []Transition
	Average     time.Duration
}

// Fastest returns the quickest transition; ok is false for an empty report.
func (r *VelocityReport) Fastest() (Transition, bool) {
	if len(r.Transitions) == 0 {
		return Transition{}, false
	}
	return r.Transitions[0], true
}

// Slowest returns the slowest transition; ok is false for an empty report.
func (r *VelocityReport) Slowest() (Transition, bool) {
	if len(r.Transitions) == 0 {
		return Transition{}, false
	}
	return r.Transitions[len(r.Transitions)-1], true
}

// Velocity derives booking transitions from slot observations. For each
// (court, date, start time) it takes the first observation with an
// available status and the first booked observation after it; groups that
// never show both states contribute nothing.
func Velocity(observations []store.SlotObservation, opts Options) VelocityReport {
	type key struct{ court, date, start string }
	groups := make(map[key][]store.SlotObservation)
	var order []key

	for _, obs := range observations {
		if opts.TimeSlot != "" && obs.StartTime != opts.TimeSlot {
			continue
		}
		if _, ok := opts.matchesDate(obs.Date); !ok {
			continue
		}
		k := key{obs.CourtName, obs.Date, obs.StartTime}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], obs)
	}

	var report VelocityReport
	var total time.Duration
	for _, k := range order {
		events := groups[k]
		sort.Slice(events, func(i, j int) bool {
			return events[i].LastUpdated.Before(events[j].LastUpdated)
		})

		var available *store.SlotObservation
		var booked *store.SlotObservation
		for i := range events {
			switch {
			case available == nil && events[i].Status == string(court.SlotAvailable):
				available = &events[i]
			case available != nil && events[i].Status == string(court.SlotUnavailable):
				booked = &events[i]
			}
			if booked != nil {
				break
			}
		}
		if available == nil || booked == nil {
			continue
		}

		day, _ := opts.matchesDate(available.Date)
		total += booked.LastUpdated.Sub(available.LastUpdated)
		report.Transitions = append(report.Transitions, Transition{
			Court:     available.CourtName,
			Location:  available.Location,
			Sport:     available.SportType,
			Date:      available.Date,
			Day:       day.Weekday(),
			StartTime: available.StartTime,
			Duration:  booked.LastUpdated.Sub(available.LastUpdated),
		})
	}

	if len(report.Transitions) > 0 {
		report.Average = total / time.Duration(len(report.Transitions))
		sort.SliceStable(report.Transitions, func(i, j int) bool {
			return report.Transitions[i].Duration < report.Transitions[j].Duration
		})
	}
	return report
}

// DayPattern is the availability tally for one weekday.
type DayPattern struct {
	Day       time.Weekday
	Available int
	Booked    int
}

// AvailabilityPct is the share of tallied records that were available, in
// percent.
func (p DayPattern) AvailabilityPct() float64 {
	total := p.Available + p.Booked
	if total == 0 {
		return 0
	}
	return float64(p.Available) / float64(total) * 100
}

// DayPatterns tallies court availability by weekday, Monday first. Courts
// with no schedule are excluded from the tallies; only days that appear in
// the data are returned.
func DayPatterns(courts []court.Court, opts Options) []DayPattern {
	tallies := make(map[time.Weekday]*DayPattern)
	for _, c := range courts {
		day, ok := opts.matchesDate(c.Date)
		if !ok {
			continue
		}
		weekday := day.Weekday()
		p := tallies[weekday]
		if p == nil {
			p = &DayPattern{Day: weekday}
			tallies[weekday] = p
		}
		switch c.AvailabilityStatus {
		case court.StatusAvailable:
			p.Available++
		case court.StatusFullyBooked:
			p.Booked++
		}
	}

	weekOrder := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	patterns := make([]DayPattern, 0, len(tallies))
	for _, day := range weekOrder {
		if p, ok := tallies[day]; ok {
			patterns = append(patterns, *p)
		}
	}
	return patterns
}

// ParseWeekday resolves a weekday name ("friday") case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("invalid day of week %q", name)
}
