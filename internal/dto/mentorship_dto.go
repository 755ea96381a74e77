package dto

import (
	"time"

	"github.com/google/uuid"
)

type MentorProfileRequest struct {
	Department  string   `json:"department" validate:"required,min=1"`
	Year        string   `json:"year" validate:"required,min=1"`
	Specialties []string `json:"specialties" validate:"required,min=1,dive,min=1"`
	Bio         string   `json:"bio"`
}

type UpdateMentorProfileRequest struct {
	Department  *string   `json:"department" validate:"omitempty,min=1"`
	Year        *string   `json:"year" validate:"omitempty,min=1"`
	Specialties *[]string `json:"specialties" validate:"omitempty,min=1,dive,min=1"`
	Bio         *string   `json:"bio"`
	IsAvailable *bool     `json:"is_available"`
}

// MentorUser is a redacted identity embedded in mentor listings and detail.
type MentorUser struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          *string   `json:"email,omitempty"`
	AnonymityLevel int       `json:"anonymity_level"`
	CreatedAt      time.Time `json:"created_at"`
}

type MentorView struct {
	ID               uuid.UUID   `json:"id"`
	Department       string      `json:"department"`
	Year             string      `json:"year"`
	Specialties      []string    `json:"specialties"`
	Bio              string      `json:"bio,omitempty"`
	IsAvailable      bool        `json:"is_available"`
	Rating           float64     `json:"rating"`
	CreatedAt        time.Time   `json:"created_at"`
	User             MentorUser  `json:"user"`
	ConnectionStatus *string     `json:"connection_status,omitempty"`
	ConnectionID     *uuid.UUID  `json:"connection_id,omitempty"`
	Stats            *MentorStat `json:"stats,omitempty"`
}

type MentorStat struct {
	ActiveConnections int64 `json:"active_connections"`
}

type MentorListResponse struct {
	Mentors    []MentorView  `json:"mentors"`
	Pagination Pagination    `json:"pagination"`
	Filters    MentorFilters `json:"filters"`
}

type MentorFilters struct {
	Department string `json:"department,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
	Available  string `json:"available,omitempty"`
}

type ConnectionRequest struct {
	MentorID string `json:"mentor_id" validate:"required,uuid"`
}

type UpdateConnectionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

// ConnectionParty is either side of a connection, redacted by the subject's
// own anonymity level.
type ConnectionParty struct {
	ID             uuid.UUID `json:"id"`
	FullName       string    `json:"full_name"`
	Email          *string   `json:"email"`
	AnonymityLevel int       `json:"anonymity_level"`
}

type ConnectionView struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Student   ConnectionParty `json:"student"`
	Mentor    ConnectionParty `json:"mentor"`
}

type ConnectionListResponse struct {
	Connections []ConnectionView `json:"connections"`
	Pagination  Pagination       `json:"pagination"`
}
