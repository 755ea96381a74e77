package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/campuspulse/mental-pulse-backend/internal/privacy"
	"github.com/campuspulse/mental-pulse-backend/internal/realtime"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("crisis alert not found")

// CrisisService handles alert ingestion, triage listing, and the
// resolve/reopen transition. It depends on the push channel through the
// realtime.Notifier interface, never on a process-wide registry.
type CrisisService struct {
	db       *gorm.DB
	notifier realtime.Notifier
}

func NewCrisisService(db *gorm.DB, notifier realtime.Notifier) *CrisisService {
	return &CrisisService{db: db, notifier: notifier}
}

// CreateAlert persists a new alert and fans a redacted notification out to
// every active administrator. Fan-out is best-effort: a failed or undelivered
// push never fails the create.
func (s *CrisisService) CreateAlert(reporter *models.User, req *dto.CreateAlertRequest) (*models.CrisisAlert, error) {
	alert := &models.CrisisAlert{
		UserID:        &reporter.ID,
		AreaOfConcern: req.AreaOfConcern,
		Description:   req.Description,
	}

	if err := s.db.Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create crisis alert: %w", err)
	}

	s.notifyAdmins(alert, reporter)

	return alert, nil
}

func (s *CrisisService) notifyAdmins(alert *models.CrisisAlert, reporter *models.User) {
	var admins []models.User
	if err := s.db.Where("user_type = ? AND is_active = ?", models.UserTypeAdmin, true).Find(&admins).Error; err != nil {
		slog.Error("failed to look up admins for alert fan-out", "alert_id", alert.ID, "error", err)
		return
	}

	payload := dto.AlertNotification{
		ID:            alert.ID,
		AreaOfConcern: alert.AreaOfConcern,
		Description:   alert.Description,
		Timestamp:     alert.Timestamp,
		Reporter:      privacy.DisplayName(reporter.FullName, reporter.AnonymityLevel, privacy.ReporterNameThreshold, privacy.AnonymousReporter),
	}

	for _, admin := range admins {
		if !s.notifier.Send(admin.ID, "crisis-alert", payload) {
			slog.Debug("admin not connected, notification dropped", "admin_id", admin.ID, "alert_id", alert.ID)
		}
	}
}

// ListAlerts returns one triage page plus global statistics. Unresolved
// alerts always sort before resolved ones, newest first within each group.
func (s *CrisisService) ListAlerts(status string, page, limit int) (*dto.TriageListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := s.db.Model(&models.CrisisAlert{})
	switch status {
	case "resolved":
		query = query.Where("is_resolved = ?", true)
	case "active":
		query = query.Where("is_resolved = ?", false)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count crisis alerts: %w", err)
	}

	var alerts []models.CrisisAlert
	if err := query.
		Preload("User").
		Order("is_resolved ASC").
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list crisis alerts: %w", err)
	}

	now := time.Now()
	rows := make([]dto.TriageAlert, 0, len(alerts))
	for _, alert := range alerts {
		rows = append(rows, dto.TriageAlert{
			ID:            alert.ID,
			AreaOfConcern: alert.AreaOfConcern,
			Description:   alert.Description,
			Timestamp:     alert.Timestamp,
			IsResolved:    alert.IsResolved,
			ResolvedAt:    alert.ResolvedAt,
			Reporter:      reporterView(alert.User),
			Priority:      DeterminePriority(alert.AreaOfConcern, alert.Description),
			TimeElapsedMs: now.Sub(alert.Timestamp).Milliseconds(),
		})
	}

	stats, err := s.statistics()
	if err != nil {
		return nil, err
	}

	return &dto.TriageListResponse{
		Alerts:     rows,
		Pagination: dto.NewPagination(page, limit, totalCount),
		Statistics: *stats,
	}, nil
}

// reporterView redacts the reporter against their anonymity level as read
// right now; a deleted or missing reporter degrades to the no-identity view.
func reporterView(user *models.User) privacy.Identity {
	if user == nil || user.ID == uuid.Nil {
		return privacy.AnonymousIdentity()
	}
	return privacy.ReporterIdentity(user.ID.String(), user.FullName, user.Email, user.AnonymityLevel)
}

// statistics is always computed over the whole table, never the filtered page.
func (s *CrisisService) statistics() (*dto.AlertStatistics, error) {
	var stats dto.AlertStatistics
	base := s.db.Model(&models.CrisisAlert{})

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to compute alert statistics: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Where("is_resolved = ?", false).Count(&stats.Active).Error; err != nil {
		return nil, fmt.Errorf("failed to compute alert statistics: %w", err)
	}
	if err := base.Session(&gorm.Session{}).Where("is_resolved = ?", true).Count(&stats.Resolved).Error; err != nil {
		return nil, fmt.Errorf("failed to compute alert statistics: %w", err)
	}
	cutoff := time.Now().Add(-24 * time.Hour)
	if err := base.Session(&gorm.Session{}).Where("timestamp >= ?", cutoff).Count(&stats.Last24Hours).Error; err != nil {
		return nil, fmt.Errorf("failed to compute alert statistics: %w", err)
	}
	return &stats, nil
}

// SetResolved toggles an alert between active and resolved. Resolving stamps
// a fresh resolvedAt on every call; reopening clears it. No locking: under
// concurrent toggles the last write wins.
func (s *CrisisService) SetResolved(alertID uuid.UUID, resolved bool) (*models.CrisisAlert, error) {
	var alert models.CrisisAlert
	if err := s.db.First(&alert, "id = ?", alertID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to load crisis alert: %w", err)
	}

	var resolvedAt *time.Time
	if resolved {
		now := time.Now().UTC()
		resolvedAt = &now
	}

	if err := s.db.Model(&alert).Updates(map[string]interface{}{
		"is_resolved": resolved,
		"resolved_at": resolvedAt,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update crisis alert: %w", err)
	}

	alert.IsResolved = resolved
	alert.ResolvedAt = resolvedAt
	return &alert, nil
}
