package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	FullName       string `json:"full_name" validate:"required,min=2"`
	UserType       string `json:"user_type" validate:"required,oneof=student mentor admin"`
	AnonymityLevel *int   `json:"anonymity_level" validate:"omitempty,min=0,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	UserType       string    `json:"user_type"`
	AnonymityLevel int       `json:"anonymity_level"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProfileResponse is the caller's own profile; MentorProfile is present only
// for mentor-type users that have completed one.
type ProfileResponse struct {
	User          UserResponse `json:"user"`
	MentorProfile *MentorView  `json:"mentor_profile,omitempty"`
}

type UpdatePrivacyRequest struct {
	AnonymityLevel *int `json:"anonymity_level" validate:"required,min=0,max=100"`
}
