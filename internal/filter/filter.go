// Package filter provides in-memory filtering over court records.
//
// Filters narrow an already-fetched court list by sport, availability
// status, location (substring, case-insensitive), or court name (exact).
// Empty criteria match everything, so a zero Filter is a no-op.
package filter

import (
	"strings"

	"github.com/yorch/doral-courts/internal/court"
)

// Filter holds court filtering criteria. All set criteria must match.
type Filter struct {
	Sports        []court.Sport
	Statuses      []court.Status
	Locations     []string
	Names         []string
	AvailableOnly bool
}

// Apply returns the courts matching the filter, preserving input order.
func (f Filter) Apply(courts []court.Court) []court.Court {
	matched := make([]court.Court, 0, len(courts))
	for _, c := range courts {
		if f.Matches(&c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Matches reports whether one court satisfies every set criterion.
func (f Filter) Matches(c *court.Court) bool {
	if len(f.Sports) > 0 && !containsSport(f.Sports, c.SportType) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, c.AvailabilityStatus) {
		return false
	}
	if len(f.Locations) > 0 && !matchesLocation(f.Locations, c.Location) {
		return false
	}
	if len(f.Names) > 0 && !containsName(f.Names, c.Name) {
		return false
	}
	if f.AvailableOnly && c.AvailabilityStatus != court.StatusAvailable {
		return false
	}
	return true
}

func containsSport(sports []court.Sport, s court.Sport) bool {
	for _, candidate := range sports {
		if candidate == s {
			return true
		}
	}
	return false
}

func containsStatus(statuses []court.Status, s court.Status) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func matchesLocation(locations []string, location string) bool {
	lower := strings.ToLower(location)
	for _, candidate := range locations {
		if strings.Contains(lower, strings.ToLower(candidate)) {
			return true
		}
	}
	return false
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
