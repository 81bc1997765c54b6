package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yorch/doral-courts/internal/court"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "courts.db"), zap.NewNop().Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func tennisCourt(name, date string) court.Court {
	return court.Court{
		Name:               name,
		SportType:          court.SportTennis,
		Location:           "Doral Central Park",
		Capacity:           "4",
		AvailabilityStatus: court.StatusAvailable,
		Date:               date,
		TimeSlots: []court.TimeSlot{
			{StartTime: "8:00 am", EndTime: "9:00 am", Status: court.SlotAvailable},
			{StartTime: "9:00 am", EndTime: "10:00 am", Status: court.SlotUnavailable},
		},
	}
}

func TestInsertAndQuery(t *testing.T) {
	s := newTestStore(t)

	price := "$10.00"
	c := tennisCourt("Tennis Court 1", "06/15/2025")
	c.Price = &price

	inserted, err := s.Insert([]court.Court{c})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	courts, err := s.Query("", "", "")
	require.NoError(t, err)
	require.Len(t, courts, 1)

	got := courts[0]
	assert.Equal(t, "Tennis Court 1", got.Name)
	assert.Equal(t, court.SportTennis, got.SportType)
	assert.Equal(t, "Doral Central Park", got.Location)
	assert.Equal(t, court.StatusAvailable, got.AvailabilityStatus)
	require.NotNil(t, got.Price)
	assert.Equal(t, "$10.00", *got.Price)
	require.Len(t, got.TimeSlots, 2)
	assert.Equal(t, "8:00 am", got.TimeSlots[0].StartTime)
}

func TestInsertUpsertsSameSnapshot(t *testing.T) {
	s := newTestStore(t)
	c := tennisCourt("Tennis Court 1", "06/15/2025")

	_, err := s.Insert([]court.Court{c})
	require.NoError(t, err)

	// Same identity again: location changed, still one row, slots replaced
	// rather than accumulated.
	c.Location = "Doral Legacy Park"
	_, err = s.Insert([]court.Court{c})
	require.NoError(t, err)

	courts, err := s.Query("", "", "")
	require.NoError(t, err)
	require.Len(t, courts, 1)
	assert.Equal(t, "Doral Legacy Park", courts[0].Location)
	assert.Len(t, courts[0].TimeSlots, 2)
}

func TestInsertNewSlotPictureKeepsHistory(t *testing.T) {
	s := newTestStore(t)
	c := tennisCourt("Tennis Court 1", "06/15/2025")

	_, err := s.Insert([]court.Court{c})
	require.NoError(t, err)

	// A slot became booked: the summary changes, so the new snapshot is a
	// distinct row.
	c.TimeSlots[0].Status = court.SlotUnavailable
	c.AvailabilityStatus = court.StatusFullyBooked
	_, err = s.Insert([]court.Court{c})
	require.NoError(t, err)

	courts, err := s.Query("", "", "")
	require.NoError(t, err)
	assert.Len(t, courts, 2)
}

func TestQueryFilters(t *testing.T) {
	s := newTestStore(t)

	pickleball := court.Court{
		Name:               "Pickleball Court 5",
		SportType:          court.SportPickleball,
		Location:           "Doral Legacy Park",
		Capacity:           "4",
		AvailabilityStatus: court.StatusFullyBooked,
		Date:               "06/15/2025",
	}
	_, err := s.Insert([]court.Court{
		tennisCourt("Tennis Court 1", "06/15/2025"),
		tennisCourt("Tennis Court 2", "06/16/2025"),
		pickleball,
	})
	require.NoError(t, err)

	bySport, err := s.Query("Tennis", "", "")
	require.NoError(t, err)
	assert.Len(t, bySport, 2)

	byStatus, err := s.Query("", "Fully Booked", "")
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Pickleball Court 5", byStatus[0].Name)

	byDate, err := s.Query("", "", "06/16/2025")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "Tennis Court 2", byDate[0].Name)

	none, err := s.Query("Tennis", "Fully Booked", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCourtNamesAndLocations(t *testing.T) {
	s := newTestStore(t)

	a := tennisCourt("Tennis Court 1", "06/15/2025")
	b := tennisCourt("Tennis Court 1", "06/16/2025")
	c := tennisCourt("Tennis Court 2", "06/15/2025")
	c.Location = "Doral Legacy Park"
	_, err := s.Insert([]court.Court{a, b, c})
	require.NoError(t, err)

	names, err := s.CourtNames("", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tennis Court 1", "Tennis Court 2"}, names)

	names, err = s.CourtNames("Tennis", "06/16/2025")
	require.NoError(t, err)
	assert.Equal(t, []string{"Tennis Court 1"}, names)

	locations, err := s.Locations("")
	require.NoError(t, err)
	assert.Equal(t, []string{"Doral Central Park", "Doral Legacy Park"}, locations)

	locations, err = s.Locations("06/16/2025")
	require.NoError(t, err)
	assert.Equal(t, []string{"Doral Central Park"}, locations)
}

func TestSlotObservations(t *testing.T) {
	s := newTestStore(t)

	c := tennisCourt("Tennis Court 1", "06/15/2025")
	_, err := s.Insert([]court.Court{c})
	require.NoError(t, err)

	// The first slot flips to booked: the changed summary makes a new
	// court row, so both sightings of the slot survive.
	c.TimeSlots[0].Status = court.SlotUnavailable
	c.AvailabilityStatus = court.StatusFullyBooked
	_, err = s.Insert([]court.Court{c})
	require.NoError(t, err)

	observations, err := s.SlotObservations("", "", "")
	require.NoError(t, err)
	require.Len(t, observations, 4)

	// Ordered by court, date, start time, then observation time: the two
	// sightings of the 8:00 am slot come first, available before booked.
	assert.Equal(t, "8:00 am", observations[0].StartTime)
	assert.Equal(t, string(court.SlotAvailable), observations[0].Status)
	assert.Equal(t, "8:00 am", observations[1].StartTime)
	assert.Equal(t, string(court.SlotUnavailable), observations[1].Status)
	assert.False(t, observations[1].LastUpdated.Before(observations[0].LastUpdated))

	for _, o := range observations {
		assert.Equal(t, "Tennis Court 1", o.CourtName)
		assert.Equal(t, "Doral Central Park", o.Location)
		assert.Equal(t, "Tennis", o.SportType)
		assert.Equal(t, "06/15/2025", o.Date)
	}
}

func TestSlotObservationsFilters(t *testing.T) {
	s := newTestStore(t)

	pickleball := court.Court{
		Name:               "Pickleball Court 5",
		SportType:          court.SportPickleball,
		Location:           "Doral Legacy Park",
		Capacity:           "4",
		AvailabilityStatus: court.StatusAvailable,
		Date:               "06/15/2025",
		TimeSlots: []court.TimeSlot{
			{StartTime: "6:00 pm", EndTime: "7:00 pm", Status: court.SlotAvailable},
		},
	}
	_, err := s.Insert([]court.Court{tennisCourt("Tennis Court 1", "06/15/2025"), pickleball})
	require.NoError(t, err)

	bySport, err := s.SlotObservations("Pickleball", "", "")
	require.NoError(t, err)
	require.Len(t, bySport, 1)
	assert.Equal(t, "Pickleball Court 5", bySport[0].CourtName)

	byLocation, err := s.SlotObservations("", "Legacy", "")
	require.NoError(t, err)
	require.Len(t, byLocation, 1)
	assert.Equal(t, "Doral Legacy Park", byLocation[0].Location)

	byName, err := s.SlotObservations("", "", "Tennis Court 1")
	require.NoError(t, err)
	assert.Len(t, byName, 2)
}

func TestClearOld(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Insert([]court.Court{tennisCourt("Tennis Court 1", "06/15/2025")})
	require.NoError(t, err)

	// Fresh rows survive a 7-day cutoff.
	deleted, err := s.ClearOld(7)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	// A zero-day cutoff removes everything updated before now.
	deleted, err = s.ClearOld(0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	courts, err := s.Query("", "", "")
	require.NoError(t, err)
	assert.Empty(t, courts)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, empty.TotalCourts)
	assert.Nil(t, empty.LastUpdated)

	pickleball := court.Court{
		Name:               "Pickleball Court 5",
		SportType:          court.SportPickleball,
		Location:           "Doral Legacy Park",
		Capacity:           "4",
		AvailabilityStatus: court.StatusFullyBooked,
		Date:               "06/15/2025",
	}
	_, err = s.Insert([]court.Court{
		tennisCourt("Tennis Court 1", "06/15/2025"),
		tennisCourt("Tennis Court 2", "06/15/2025"),
		pickleball,
	})
	require.NoError(t, err)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.TotalCourts)
	assert.EqualValues(t, 2, stats.SportCounts["Tennis"])
	assert.EqualValues(t, 1, stats.SportCounts["Pickleball"])
	assert.EqualValues(t, 2, stats.AvailabilityCounts["Available"])
	assert.EqualValues(t, 1, stats.AvailabilityCounts["Fully Booked"])
	require.NotNil(t, stats.LastUpdated)
}
