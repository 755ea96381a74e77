package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MoodEntry is a single mood check-in (score 1-5, optional note and campus
// location used by the admin stress heatmap).
type MoodEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	MoodScore int       `gorm:"not null" json:"mood_score"`
	Notes     string    `gorm:"size:1000" json:"notes,omitempty"`
	Location  *string   `gorm:"size:255;index" json:"location,omitempty"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}

func (MoodEntry) TableName() string {
	return "mood_entries"
}
