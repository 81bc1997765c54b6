package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yorch/doral-courts/internal/court"
)

// DefaultFilename is the database file created under the config directory.
const DefaultFilename = "courts.db"

// Store wraps the SQLite database holding court history.
type Store struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// Open opens (creating if needed) the database at path and migrates the
// schema.
func Open(path string, log *zap.SugaredLogger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&CourtRecord{}, &TimeSlotRecord{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	log.Debugw("database ready", "path", path)
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Insert upserts court snapshots and replaces each court's time slots for
// its date. A failure on one court is logged and skipped so the rest of
// the batch still lands; the returned count covers successful courts.
func (s *Store) Insert(courts []court.Court) (int, error) {
	s.log.Debugw("inserting courts", "count", len(courts))
	inserted := 0

	for _, c := range courts {
		if err := s.insertOne(c); err != nil {
			s.log.Errorw("failed to insert court", "court", c.Name, "error", err)
			continue
		}
		inserted++
	}

	s.log.Infow("stored court snapshots", "inserted", inserted, "total", len(courts))
	return inserted, nil
}

func (s *Store) insertOne(c court.Court) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		record := CourtRecord{
			Name:               c.Name,
			SportType:          string(c.SportType),
			Location:           c.Location,
			Capacity:           c.Capacity,
			AvailabilityStatus: string(c.AvailabilityStatus),
			Date:               c.Date,
			SlotSummary:        c.SlotSummary(),
			Price:              c.Price,
			LastUpdated:        time.Now(),
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}, {Name: "date"}, {Name: "time_slot"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"sport_type", "location", "capacity", "availability_status", "price", "last_updated",
			}),
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("upserting court: %w", err)
		}

		if record.ID == 0 {
			// Conflict path: look the row up by its identity.
			if err := tx.Where("name = ? AND date = ? AND time_slot = ?",
				record.Name, record.Date, record.SlotSummary).
				First(&record).Error; err != nil {
				return fmt.Errorf("resolving court id: %w", err)
			}
		}

		if err := tx.Where("court_id = ? AND date = ?", record.ID, c.Date).
			Delete(&TimeSlotRecord{}).Error; err != nil {
			return fmt.Errorf("clearing old time slots: %w", err)
		}

		for _, slot := range c.TimeSlots {
			slotRecord := TimeSlotRecord{
				CourtID:     record.ID,
				StartTime:   slot.StartTime,
				EndTime:     slot.EndTime,
				Status:      string(slot.Status),
				Date:        c.Date,
				LastUpdated: time.Now(),
			}
			if err := tx.Create(&slotRecord).Error; err != nil {
				return fmt.Errorf("inserting time slot: %w", err)
			}
		}
		return nil
	})
}

// Query returns stored courts matching the optional filters. Empty filter
// values match everything.
func (s *Store) Query(sportType, availabilityStatus, date string) ([]court.Court, error) {
	s.log.Debugw("querying courts",
		"sport", sportType, "status", availabilityStatus, "date", date)

	q := s.db.Model(&CourtRecord{}).Preload("TimeSlots", func(db *gorm.DB) *gorm.DB {
		return db.Order("start_time")
	})
	if sportType != "" {
		q = q.Where("sport_type = ?", sportType)
	}
	if availabilityStatus != "" {
		q = q.Where("availability_status = ?", availabilityStatus)
	}
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var records []CourtRecord
	if err := q.Order("date, time_slot, sport_type, name").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("querying courts: %w", err)
	}

	courts := make([]court.Court, 0, len(records))
	for _, r := range records {
		courts = append(courts, r.toCourt())
	}
	s.log.Debugw("query returned courts", "count", len(courts))
	return courts, nil
}

func (r CourtRecord) toCourt() court.Court {
	slots := make([]court.TimeSlot, 0, len(r.TimeSlots))
	for _, sr := range r.TimeSlots {
		slots = append(slots, court.TimeSlot{
			StartTime: sr.StartTime,
			EndTime:   sr.EndTime,
			Status:    court.SlotStatus(sr.Status),
		})
	}
	return court.Court{
		Name:               r.Name,
		SportType:          court.Sport(r.SportType),
		Location:           r.Location,
		Capacity:           r.Capacity,
		AvailabilityStatus: court.Status(r.AvailabilityStatus),
		Date:               r.Date,
		TimeSlots:          slots,
		Price:              r.Price,
	}
}

// CourtNames returns distinct stored court names, optionally narrowed by
// sport and date.
func (s *Store) CourtNames(sportType, date string) ([]string, error) {
	q := s.db.Model(&CourtRecord{}).Distinct("name")
	if sportType != "" {
		q = q.Where("sport_type = ?", sportType)
	}
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var names []string
	if err := q.Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("querying court names: %w", err)
	}
	return names, nil
}

// Locations returns distinct stored locations, optionally narrowed by date.
func (s *Store) Locations(date string) ([]string, error) {
	q := s.db.Model(&CourtRecord{}).Distinct("location")
	if date != "" {
		q = q.Where("date = ?", date)
	}

	var locations []string
	if err := q.Order("location").Pluck("location", &locations).Error; err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	return locations, nil
}

// SlotObservation is one stored sighting of a time slot, joined with its
// court's identity. Because a changed slot picture creates a new court row
// rather than overwriting, the same (court, date, start time) accumulates
// observations over time and their status sequence records booking
// transitions.
type SlotObservation struct {
	CourtName   string
	Location    string
	SportType   string
	Date        string
	StartTime   string
	Status      string
	LastUpdated time.Time
}

// SlotObservations returns all stored slot sightings matching the optional
// filters, ordered by court, date, start time, and observation time.
// Location matches as a substring; the other filters are exact.
func (s *Store) SlotObservations(sportType, location, courtName string) ([]SlotObservation, error) {
	q := s.db.Table("time_slots").
		Select("courts.name AS court_name, courts.location, courts.sport_type, " +
			"time_slots.date, time_slots.start_time, time_slots.status, time_slots.last_updated").
		Joins("JOIN courts ON courts.id = time_slots.court_id")
	if sportType != "" {
		q = q.Where("courts.sport_type = ?", sportType)
	}
	if location != "" {
		q = q.Where("courts.location LIKE ?", "%"+location+"%")
	}
	if courtName != "" {
		q = q.Where("courts.name = ?", courtName)
	}

	var observations []SlotObservation
	if err := q.Order("courts.name, time_slots.date, time_slots.start_time, time_slots.last_updated").
		Scan(&observations).Error; err != nil {
		return nil, fmt.Errorf("querying slot observations: %w", err)
	}
	return observations, nil
}

// ClearOld removes court and slot records last updated more than days ago
// and reports how many court rows were deleted.
func (s *Store) ClearOld(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	s.log.Debugw("clearing old data", "days", days, "cutoff", cutoff)

	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("last_updated < ?", cutoff).Delete(&TimeSlotRecord{}).Error; err != nil {
			return fmt.Errorf("deleting old time slots: %w", err)
		}
		result := tx.Where("last_updated < ?", cutoff).Delete(&CourtRecord{})
		if result.Error != nil {
			return fmt.Errorf("deleting old courts: %w", result.Error)
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Infow("cleared old data", "courts_deleted", deleted)
	return deleted, nil
}

// Stats summarizes the stored history.
type Stats struct {
	TotalCourts        int64
	SportCounts        map[string]int64
	AvailabilityCounts map[string]int64
	LastUpdated        *time.Time
}

// Stats computes database statistics across all stored records.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{
		SportCounts:        make(map[string]int64),
		AvailabilityCounts: make(map[string]int64),
	}

	if err := s.db.Model(&CourtRecord{}).Count(&stats.TotalCourts).Error; err != nil {
		return nil, fmt.Errorf("counting courts: %w", err)
	}

	type groupCount struct {
		Key   string
		Count int64
	}

	var bySport []groupCount
	if err := s.db.Model(&CourtRecord{}).
		Select("sport_type AS key, COUNT(*) AS count").
		Group("sport_type").Scan(&bySport).Error; err != nil {
		return nil, fmt.Errorf("counting by sport: %w", err)
	}
	for _, g := range bySport {
		stats.SportCounts[g.Key] = g.Count
	}

	var byStatus []groupCount
	if err := s.db.Model(&CourtRecord{}).
		Select("availability_status AS key, COUNT(*) AS count").
		Group("availability_status").Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("counting by status: %w", err)
	}
	for _, g := range byStatus {
		stats.AvailabilityCounts[g.Key] = g.Count
	}

	var latest CourtRecord
	err := s.db.Order("last_updated DESC").First(&latest).Error
	switch {
	case err == nil:
		stats.LastUpdated = &latest.LastUpdated
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("finding last update: %w", err)
	}

	return stats, nil
}
