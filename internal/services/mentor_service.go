package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/campuspulse/mental-pulse-backend/internal/privacy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrMentorNotFound  = errors.New("mentor not found")
	ErrProfileExists   = errors.New("mentor profile already exists")
	ErrProfileNotFound = errors.New("mentor profile not found")
	ErrNotMentor       = errors.New("only mentors can create mentor profiles")
)

type MentorService struct {
	db *gorm.DB
}

func NewMentorService(db *gorm.DB) *MentorService {
	return &MentorService{db: db}
}

// ListMentors returns available mentors (unless available=false is asked for
// explicitly), best-rated first, with names redacted per each mentor's own
// anonymity level.
func (s *MentorService) ListMentors(filters dto.MentorFilters, page, limit int) (*dto.MentorListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.MentorProfile{}).
		Where("is_available = ?", filters.Available != "false")

	if filters.Department != "" {
		query = query.Where("LOWER(department) LIKE ?", "%"+strings.ToLower(filters.Department)+"%")
	}
	if filters.Specialty != "" {
		// Specialties is a JSON string array; match the quoted element.
		query = query.Where("specialties LIKE ?", "%\""+filters.Specialty+"\"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count mentors: %w", err)
	}

	var profiles []models.MentorProfile
	if err := query.
		Preload("User").
		Order("rating DESC").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	mentors := make([]dto.MentorView, 0, len(profiles))
	for i := range profiles {
		mentors = append(mentors, listMentorView(&profiles[i]))
	}

	return &dto.MentorListResponse{
		Mentors:    mentors,
		Pagination: dto.NewPagination(page, limit, totalCount),
		Filters:    filters,
	}, nil
}

// GetMentor returns one mentor's detail as seen by viewer. Email shows only
// to a connected student or below the mentor's email threshold; active
// connection stats show only to connected students or low-anonymity mentors.
func (s *MentorService) GetMentor(profileID, viewerID uuid.UUID) (*dto.MentorView, error) {
	var profile models.MentorProfile
	if err := s.db.Preload("User").First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}

	var connection models.Connection
	connected := s.db.Where("student_id = ? AND mentor_id = ?", viewerID, profile.UserID).
		First(&connection).Error == nil

	level := profile.User.AnonymityLevel
	view := listMentorView(&profile)

	if connected {
		view.ConnectionStatus = &connection.Status
		view.ConnectionID = &connection.ID
	}

	accepted := connected && connection.Status == models.ConnectionAccepted
	if accepted || level < privacy.EmailThreshold {
		view.User.Email = &profile.User.Email
	}

	if accepted || level < privacy.ContactThreshold {
		var active int64
		if err := s.db.Model(&models.Connection{}).
			Where("mentor_id = ? AND status = ?", profile.UserID, models.ConnectionAccepted).
			Count(&active).Error; err != nil {
			return nil, fmt.Errorf("failed to count connections: %w", err)
		}
		view.Stats = &dto.MentorStat{ActiveConnections: active}
	}

	return &view, nil
}

// CreateProfile creates the caller's mentor profile. One per user.
func (s *MentorService) CreateProfile(user *models.User, req *dto.MentorProfileRequest) (*dto.MentorView, error) {
	if user.UserType != models.UserTypeMentor && user.UserType != models.UserTypeAdmin {
		return nil, ErrNotMentor
	}

	var existing models.MentorProfile
	if err := s.db.Where("user_id = ?", user.ID).First(&existing).Error; err == nil {
		return nil, ErrProfileExists
	}

	specialties, err := json.Marshal(req.Specialties)
	if err != nil {
		return nil, fmt.Errorf("failed to encode specialties: %w", err)
	}

	profile := models.MentorProfile{
		UserID:      user.ID,
		Department:  req.Department,
		Year:        req.Year,
		Specialties: specialties,
		Bio:         req.Bio,
		IsAvailable: true,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create mentor profile: %w", err)
	}

	view := ownMentorView(&profile, user)
	return &view, nil
}

// UpdateProfile applies a partial update to the caller's mentor profile.
func (s *MentorService) UpdateProfile(user *models.User, req *dto.UpdateMentorProfileRequest) (*dto.MentorView, error) {
	var profile models.MentorProfile
	if err := s.db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load mentor profile: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.Specialties != nil {
		specialties, err := json.Marshal(*req.Specialties)
		if err != nil {
			return nil, fmt.Errorf("failed to encode specialties: %w", err)
		}
		updates["specialties"] = specialties
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}

	if len(updates) > 0 {
		if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update mentor profile: %w", err)
		}
		if err := s.db.First(&profile, "id = ?", profile.ID).Error; err != nil {
			return nil, fmt.Errorf("failed to reload mentor profile: %w", err)
		}
	}

	view := ownMentorView(&profile, user)
	return &view, nil
}

// listMentorView is the listing form: name redacted at the mentor threshold,
// email never included.
func listMentorView(profile *models.MentorProfile) dto.MentorView {
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
			ID:             profile.User.ID,
			FullName:       privacy.RedactName(profile.User.FullName, profile.User.AnonymityLevel, privacy.MentorNameThreshold, privacy.AnonymousMentor),
			AnonymityLevel: profile.User.AnonymityLevel,
			CreatedAt:      profile.User.CreatedAt,
		},
	}
}
