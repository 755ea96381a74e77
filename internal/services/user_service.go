package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetProfile returns the caller's own profile, with the mentor profile
// attached when one exists.
func (s *UserService) GetProfile(userID uuid.UUID) (*dto.ProfileResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	resp := &dto.ProfileResponse{User: UserView(&user)}

	var profile models.MentorProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err == nil {
		view := ownMentorView(&profile, &user)
		resp.MentorProfile = &view
	}

	return resp, nil
}

// UpdatePrivacy changes the caller's anonymity level. The new level applies
// to every subsequent read of the caller's identity, including alerts they
// reported in the past.
func (s *UserService) UpdatePrivacy(userID uuid.UUID, level int) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.db.Model(&user).Update("anonymity_level", level).Error; err != nil {
		return nil, fmt.Errorf("failed to update anonymity level: %w", err)
	}
	user.AnonymityLevel = level

	view := UserView(&user)
	return &view, nil
}

// ownMentorView is unredacted: the subject is looking at themselves.
func ownMentorView(profile *models.MentorProfile, user *models.User) dto.MentorView {
	return dto.MentorView{
		ID:          profile.ID,
		Department:  profile.Department,
		Year:        profile.Year,
		Specialties: decodeSpecialties(profile.Specialties),
		Bio:         profile.Bio,
		IsAvailable: profile.IsAvailable,
		Rating:      profile.Rating,
		CreatedAt:   profile.CreatedAt,
		User: dto.MentorUser{
			ID:             user.ID,
			FullName:       user.FullName,
			Email:          &user.Email,
			AnonymityLevel: user.AnonymityLevel,
			CreatedAt:      user.CreatedAt,
		},
	}
}

func decodeSpecialties(raw []byte) []string {
	var specialties []string
	if err := json.Unmarshal(raw, &specialties); err != nil {
		return []string{}
	}
	return specialties
}
