package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MentorProfile extends a mentor-type user with matching metadata.
// Specialties is a JSON string array.
type MentorProfile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Department  string         `gorm:"not null;size:255;index" json:"department"`
	Year        string         `gorm:"not null;size:50" json:"year"`
	Specialties datatypes.JSON `gorm:"not null" json:"specialties"`
	Bio         string         `gorm:"type:text" json:"bio,omitempty"`
	IsAvailable bool           `gorm:"not null;default:true;index" json:"is_available"`
	Rating      float64        `gorm:"not null;default:0" json:"rating"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	User        User           `gorm:"foreignKey:UserID" json:"-"`
}

func (p *MentorProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (MentorProfile) TableName() string {
	return "mentor_profiles"
}
