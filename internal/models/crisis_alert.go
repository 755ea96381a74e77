package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CrisisAlert is a user-submitted report of a concerning situation, tracked
// through an active/resolved lifecycle. UserID goes nil if the reporter is
// later deleted; the alert itself is never deleted through the API.
//
// Invariant: ResolvedAt is non-nil if and only if IsResolved is true.
type CrisisAlert struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        *uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	AreaOfConcern string     `gorm:"not null;size:255" json:"area_of_concern"`
	Description   string     `gorm:"type:text" json:"description"`
	Timestamp     time.Time  `gorm:"not null;index" json:"timestamp"`
	IsResolved    bool       `gorm:"not null;default:false;index" json:"is_resolved"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	User          *User      `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (a *CrisisAlert) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	return nil
}

func (CrisisAlert) TableName() string {
	return "crisis_alerts"
}
