package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User types. Administrators are not linked to alerts by ownership; any
// active admin may view or resolve any alert.
const (
	UserTypeStudent = "student"
	UserTypeMentor  = "mentor"
	UserTypeAdmin   = "admin"
)

type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PasswordHash   string         `gorm:"not null" json:"-"`
	FullName       string         `gorm:"not null;size:255" json:"full_name"`
	UserType       string         `gorm:"size:20;not null;default:'student';index" json:"user_type"`
	AnonymityLevel int            `gorm:"not null;default:50" json:"anonymity_level"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}
