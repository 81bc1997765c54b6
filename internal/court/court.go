package court

import (
	"fmt"
	"strings"
)

// SlotStatus is the availability of a single bookable interval.
type SlotStatus string

const (
	SlotAvailable   SlotStatus = "Available"
	SlotUnavailable SlotStatus = "Unavailable"
)

// Status is a court's overall availability for one date.
type Status string

const (
	StatusAvailable   Status = "Available"
	StatusFullyBooked Status = "Fully Booked"
	StatusNoSchedule  Status = "No Schedule"
)

// Sport identifies the sport a court is used for.
type Sport string

const (
	SportTennis     Sport = "Tennis"
	SportPickleball Sport = "Pickleball"
)

// TimeSlot is a single bookable interval for one court on one date.
// Times are kept as the site's free-form 12-hour strings ("8:00 am");
// the source format is too inconsistently spaced and cased to parse
// into a clock type.
type TimeSlot struct {
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Status    SlotStatus `json:"status"`
}

// Court is one court's availability record for one date.
type Court struct {
	Name               string     `json:"name"`
	SportType          Sport      `json:"sport_type"`
	Location           string     `json:"location"`
	Capacity           string     `json:"capacity"`
	AvailabilityStatus Status     `json:"availability_status"`
	Date               string     `json:"date"` // MM/DD/YYYY
	TimeSlots          []TimeSlot `json:"time_slots"`
	Price              *string    `json:"price,omitempty"`
}

// DeriveStatus computes a court's overall status from its time slots.
// This is the single source of truth for AvailabilityStatus: no schedule
// at all means NoSchedule, any available slot means Available, otherwise
// the court is fully booked.
func DeriveStatus(slots []TimeSlot) Status {
	if len(slots) == 0 {
		return StatusNoSchedule
	}
	for _, slot := range slots {
		if slot.Status == SlotAvailable {
			return StatusAvailable
		}
	}
	return StatusFullyBooked
}

// InferSport classifies a court as tennis or pickleball from its class
// description or name. The source domain only has the two sports, so
// anything without a tennis keyword is pickleball.
func InferSport(classDescription, name string) Sport {
	if strings.Contains(strings.ToLower(classDescription), "tennis") ||
		strings.Contains(strings.ToLower(name), "tennis") {
		return SportTennis
	}
	return SportPickleball
}

// SlotSummary returns the "available/total" summary for the court's slots,
// e.g. "3/5 available", or "No time slots" when the court has none.
func (c *Court) SlotSummary() string {
	if len(c.TimeSlots) == 0 {
		return "No time slots"
	}
	available := 0
	for _, slot := range c.TimeSlots {
		if slot.Status == SlotAvailable {
			available++
		}
	}
	return fmt.Sprintf("%d/%d available", available, len(c.TimeSlots))
}

// AvailableSlots returns the court's available time slots in document order.
func (c *Court) AvailableSlots() []TimeSlot {
	slots := make([]TimeSlot, 0, len(c.TimeSlots))
	for _, slot := range c.TimeSlots {
		if slot.Status == SlotAvailable {
			slots = append(slots, slot)
		}
	}
	return slots
}

// PriceOrDefault returns the court's price, or fallback when no price was
// published for it.
func (c *Court) PriceOrDefault(fallback string) string {
	if c.Price == nil || *c.Price == "" {
		return fallback
	}
	return *c.Price
}
