package store

import "time"

// CourtRecord is one scraped court snapshot. Identity for persistence is
// (name, date, slot summary): re-scraping the same state overwrites in
// place, while a changed slot picture creates a new row and preserves
// history.
type CourtRecord struct {
	ID                 uint    `gorm:"primaryKey"`
	Name               string  `gorm:"not null;uniqueIndex:idx_courts_identity"`
	SportType          string  `gorm:"not null;index:idx_sport_type"`
	Location           string  `gorm:"not null"`
	Capacity           string  `gorm:"not null"`
	AvailabilityStatus string  `gorm:"not null;index:idx_availability"`
	Date               string  `gorm:"not null;index:idx_date;uniqueIndex:idx_courts_identity"`
	SlotSummary        string  `gorm:"column:time_slot;not null;uniqueIndex:idx_courts_identity"`
	Price              *string ``
	LastUpdated        time.Time

	TimeSlots []TimeSlotRecord `gorm:"foreignKey:CourtID;constraint:OnDelete:CASCADE"`
}

// TableName keeps the historical table name.
func (CourtRecord) TableName() string { return "courts" }

// TimeSlotRecord is one bookable interval attached to a court snapshot.
type TimeSlotRecord struct {
	ID          uint   `gorm:"primaryKey"`
	CourtID     uint   `gorm:"not null;index:idx_time_slots_court_id"`
	StartTime   string `gorm:"not null"`
	EndTime     string `gorm:"not null"`
	Status      string `gorm:"not null;index:idx_time_slots_status"`
	Date        string `gorm:"not null;index:idx_time_slots_date"`
	LastUpdated time.Time
}

// TableName keeps the historical table name.
func (TimeSlotRecord) TableName() string { return "time_slots" }
