package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yorch/doral-courts/internal/court"
	"github.com/yorch/doral-courts/internal/store"
)

func obs(courtName, date, start, status string, seen time.Time) store.SlotObservation {
	return store.SlotObservation{
		CourtName:   courtName,
		Location:    "Doral Central Park",
		SportType:   "Tennis",
		Date:        date,
		StartTime:   start,
		Status:      status,
		LastUpdated: seen,
	}
}

func TestVelocity(t *testing.T) {
	base := time.Date(2025, time.June, 13, 8, 0, 0, 0, time.UTC) // a Friday

	observations := []store.SlotObservation{
		// Booked 45 minutes after first seen available.
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Available", base),
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Unavailable", base.Add(45*time.Minute)),
		// Booked 15 minutes after.
		obs("Tennis Court 2", "06/13/2025", "8:00 am", "Available", base),
		obs("Tennis Court 2", "06/13/2025", "8:00 am", "Unavailable", base.Add(15*time.Minute)),
		// Never booked: no transition.
		obs("Tennis Court 3", "06/13/2025", "8:00 am", "Available", base),
		obs("Tennis Court 3", "06/13/2025", "8:00 am", "Available", base.Add(time.Hour)),
		// Never seen available: no transition.
		obs("Tennis Court 4", "06/13/2025", "8:00 am", "Unavailable", base),
	}

	report := Velocity(observations, Options{})

	require.Len(t, report.Transitions, 2)
	fastest, ok := report.Fastest()
	require.True(t, ok)
	assert.Equal(t, "Tennis Court 2", fastest.Court)
	assert.Equal(t, 15*time.Minute, fastest.Duration)
	assert.Equal(t, time.Friday, fastest.Day)

	slowest, ok := report.Slowest()
	require.True(t, ok)
	assert.Equal(t, "Tennis Court 1", slowest.Court)
	assert.Equal(t, 45*time.Minute, slowest.Duration)

	assert.Equal(t, 30*time.Minute, report.Average)
}

func TestVelocityUsesFirstTransition(t *testing.T) {
	base := time.Date(2025, time.June, 13, 8, 0, 0, 0, time.UTC)

	// Available → Unavailable → Available again: only the first flip counts.
	observations := []store.SlotObservation{
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Available", base),
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Unavailable", base.Add(10*time.Minute)),
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Available", base.Add(time.Hour)),
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Unavailable", base.Add(2*time.Hour)),
	}

	report := Velocity(observations, Options{})
	require.Len(t, report.Transitions, 1)
	assert.Equal(t, 10*time.Minute, report.Transitions[0].Duration)
}

func TestVelocityFilters(t *testing.T) {
	base := time.Date(2025, time.June, 13, 8, 0, 0, 0, time.UTC) // Friday
	saturday := "06/14/2025"

	observations := []store.SlotObservation{
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Available", base),
		obs("Tennis Court 1", "06/13/2025", "8:00 am", "Unavailable", base.Add(time.Minute)),
		obs("Tennis Court 1", "06/13/2025", "6:00 pm", "Available", base),
		obs("Tennis Court 1", "06/13/2025", "6:00 pm", "Unavailable", base.Add(time.Minute)),
		obs("Tennis Court 1", saturday, "8:00 am", "Available", base.AddDate(0, 0, 1)),
		obs("Tennis Court 1", saturday, "8:00 am", "Unavailable", base.AddDate(0, 0, 1).Add(time.Minute)),
	}

	bySlot := Velocity(observations, Options{TimeSlot: "6:00 pm"})
	require.Len(t, bySlot.Transitions, 1)
	assert.Equal(t, "6:00 pm", bySlot.Transitions[0].StartTime)

	friday := time.Friday
	byDay := Velocity(observations, Options{Day: &friday})
	assert.Len(t, byDay.Transitions, 2)

	windowed := Velocity(observations, Options{
		Since: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC),
	})
	require.Len(t, windowed.Transitions, 1)
	assert.Equal(t, saturday, windowed.Transitions[0].Date)
}

func TestDayPatterns(t *testing.T) {
	courts := []court.Court{
		{Date: "06/13/2025", AvailabilityStatus: court.StatusAvailable},   // Friday
		{Date: "06/13/2025", AvailabilityStatus: court.StatusFullyBooked}, // Friday
		{Date: "06/13/2025", AvailabilityStatus: court.StatusNoSchedule},  // Friday, not tallied
		{Date: "06/14/2025", AvailabilityStatus: court.StatusAvailable},   // Saturday
		{Date: "06/16/2025", AvailabilityStatus: court.StatusFullyBooked}, // Monday
		{Date: "bad-date", AvailabilityStatus: court.StatusAvailable},
	}

	patterns := DayPatterns(courts, Options{})
	require.Len(t, patterns, 3)

	// Week order: Monday before Friday before Saturday.
	assert.Equal(t, time.Monday, patterns[0].Day)
	assert.Equal(t, time.Friday, patterns[1].Day)
	assert.Equal(t, time.Saturday, patterns[2].Day)

	friday := patterns[1]
	assert.Equal(t, 1, friday.Available)
	assert.Equal(t, 1, friday.Booked)
	assert.InDelta(t, 50.0, friday.AvailabilityPct(), 1e-9)

	saturday := patterns[2]
	assert.InDelta(t, 100.0, saturday.AvailabilityPct(), 1e-9)
}

func TestDayPatternsDayFilter(t *testing.T) {
	courts := []court.Court{
		{Date: "06/13/2025", AvailabilityStatus: court.StatusAvailable}, // Friday
		{Date: "06/14/2025", AvailabilityStatus: court.StatusAvailable}, // Saturday
	}

	friday := time.Friday
	patterns := DayPatterns(courts, Options{Day: &friday})
	require.Len(t, patterns, 1)
	assert.Equal(t, time.Friday, patterns[0].Day)
}

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("friday")
	require.NoError(t, err)
	assert.Equal(t, time.Friday, day)

	day, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	_, err = ParseWeekday("someday")
	assert.Error(t, err)
}
