package services

import (
	"errors"
	"fmt"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/campuspulse/mental-pulse-backend/internal/privacy"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrOnlyStudents        = errors.New("only students can request mentor connections")
	ErrMentorUnavailable   = errors.New("mentor is currently not accepting new connections")
	ErrConnectionExists    = errors.New("connection already exists")
	ErrConnectionNotFound  = errors.New("connection not found")
	ErrNotConnectionMentor = errors.New("only the mentor can accept or reject connection requests")
	ErrConnectionSettled   = errors.New("connection request has already been decided")
	ErrConnectionForbidden = errors.New("not authorized to view this connection")
)

type ConnectionService struct {
	db *gorm.DB
}

func NewConnectionService(db *gorm.DB) *ConnectionService {
	return &ConnectionService{db: db}
}

// RequestConnection creates a pending student-to-mentor connection. The
// mentor must exist as an active mentor user with an available profile, and
// the pair must not already have a connection in any status.
func (s *ConnectionService) RequestConnection(student *models.User, mentorUserID uuid.UUID) (*dto.ConnectionView, error) {
	if student.UserType != models.UserTypeStudent {
		return nil, ErrOnlyStudents
	}

	var mentor models.User
	if err := s.db.Where("id = ? AND user_type = ? AND is_active = ?", mentorUserID, models.UserTypeMentor, true).
		First(&mentor).Error; err != nil {
		return nil, ErrMentorNotFound
	}

	var profile models.MentorProfile
	if err := s.db.Where("user_id = ?", mentorUserID).First(&profile).Error; err != nil {
		return nil, ErrMentorNotFound
	}
	if !profile.IsAvailable {
		return nil, ErrMentorUnavailable
	}

	var existing models.Connection
	if err := s.db.Where("student_id = ? AND mentor_id = ?", student.ID, mentorUserID).
		First(&existing).Error; err == nil {
		return nil, ErrConnectionExists
	}

	connection := models.Connection{
		StudentID: student.ID,
		MentorID:  mentorUserID,
		Status:    models.ConnectionPending,
	}
	if err := s.db.Create(&connection).Error; err != nil {
		return nil, fmt.Errorf("failed to create connection: %w", err)
	}

	connection.Student = *student
	connection.Mentor = mentor
	view := connectionView(&connection)
	return &view, nil
}

// ListConnections returns connections visible to the viewer: students see
// their own, mentors see requests addressed to them, admins see everything.
func (s *ConnectionService) ListConnections(viewer *models.User, status string, page, limit int) (*dto.ConnectionListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.Connection{})
	switch viewer.UserType {
	case models.UserTypeStudent:
		query = query.Where("student_id = ?", viewer.ID)
	case models.UserTypeMentor:
		query = query.Where("mentor_id = ?", viewer.ID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count connections: %w", err)
	}

	var connections []models.Connection
	if err := query.
		Preload("Student").
		Preload("Mentor").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&connections).Error; err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	views := make([]dto.ConnectionView, 0, len(connections))
	for i := range connections {
		views = append(views, connectionView(&connections[i]))
	}

	return &dto.ConnectionListResponse{
		Connections: views,
		Pagination:  dto.NewPagination(page, limit, totalCount),
	}, nil
}

// GetConnection returns one connection, visible only to its student, its
// mentor, or an admin. Emails additionally show once the pair is accepted.
func (s *ConnectionService) GetConnection(viewer *models.User, connectionID uuid.UUID) (*dto.ConnectionView, error) {
	var connection models.Connection
	if err := s.db.Preload("Student").Preload("Mentor").
		First(&connection, "id = ?", connectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("failed to load connection: %w", err)
	}

	if connection.StudentID != viewer.ID && connection.MentorID != viewer.ID && !viewer.IsAdmin() {
		return nil, ErrConnectionForbidden
	}

	view := connectionView(&connection)
	if connection.Status == models.ConnectionAccepted {
		view.Student.Email = &connection.Student.Email
		view.Mentor.Email = &connection.Mentor.Email
	}
	return &view, nil
}

// Decide accepts or rejects a pending request. Only the addressed mentor may
// decide, and only once.
func (s *ConnectionService) Decide(viewer *models.User, connectionID uuid.UUID, action string) (*dto.ConnectionView, error) {
	var connection models.Connection
	if err := s.db.Preload("Student").Preload("Mentor").
		First(&connection, "id = ?", connectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConnectionNotFound
		}
		return nil, fmt.Errorf("failed to load connection: %w", err)
	}

	if connection.MentorID != viewer.ID {
		return nil, ErrNotConnectionMentor
	}
	if connection.Status != models.ConnectionPending {
		return nil, ErrConnectionSettled
	}

	newStatus := models.ConnectionRejected
	if action == "accept" {
		newStatus = models.ConnectionAccepted
	}
	if err := s.db.Model(&connection).Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update connection: %w", err)
	}
	connection.Status = newStatus

	view := connectionView(&connection)
	return &view, nil
}

// connectionView redacts both parties at their own anonymity levels.
func connectionView(conn *models.Connection) dto.ConnectionView {
	return dto.ConnectionView{
		ID:        conn.ID,
		Status:    conn.Status,
		CreatedAt: conn.CreatedAt,
		UpdatedAt: conn.UpdatedAt,
		Student: dto.ConnectionParty{
			ID:             conn.Student.ID,
			FullName:       privacy.RedactName(conn.Student.FullName, conn.Student.AnonymityLevel, privacy.StudentNameThreshold, privacy.AnonymousStudent),
			Email:          privacy.RedactEmail(conn.Student.Email, conn.Student.AnonymityLevel, privacy.EmailThreshold),
			AnonymityLevel: conn.Student.AnonymityLevel,
		},
		Mentor: dto.ConnectionParty{
			ID:             conn.Mentor.ID,
			FullName:       privacy.RedactName(conn.Mentor.FullName, conn.Mentor.AnonymityLevel, privacy.MentorNameThreshold, privacy.AnonymousMentor),
			Email:          privacy.RedactEmail(conn.Mentor.Email, conn.Mentor.AnonymityLevel, privacy.EmailThreshold),
			AnonymityLevel: conn.Mentor.AnonymityLevel,
		},
	}
}
