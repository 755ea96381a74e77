package dto

import (
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/privacy"
	"github.com/google/uuid"
)

type CreateAlertRequest struct {
	AreaOfConcern string `json:"area_of_concern" validate:"required,min=1"`
	Description   string `json:"description"`
}

type UpdateAlertRequest struct {
	AlertID    string `json:"alert_id" validate:"required,uuid"`
	IsResolved *bool  `json:"is_resolved" validate:"required"`
}

// AlertResponse echoes raw alert fields back to the reporter; no redaction is
// applied to the creator's own confirmation.
type AlertResponse struct {
	ID            uuid.UUID  `json:"id"`
	AreaOfConcern string     `json:"area_of_concern"`
	Description   string     `json:"description,omitempty"`
	Timestamp     time.Time  `json:"timestamp"`
	IsResolved    bool       `json:"is_resolved"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

// TriageAlert is one row of the admin listing, enriched at read time with
// priority, the redacted reporter view, and elapsed milliseconds.
type TriageAlert struct {
	ID            uuid.UUID        `json:"id"`
	AreaOfConcern string           `json:"area_of_concern"`
	Description   string           `json:"description,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
	IsResolved    bool             `json:"is_resolved"`
	ResolvedAt    *time.Time       `json:"resolved_at"`
	Reporter      privacy.Identity `json:"reporter"`
	Priority      string           `json:"priority"`
	TimeElapsedMs int64            `json:"time_elapsed"`
}

// AlertStatistics is always global, never scoped to the current filter/page.
type AlertStatistics struct {
	Total       int64 `json:"total"`
	Active      int64 `json:"active"`
	Resolved    int64 `json:"resolved"`
	Last24Hours int64 `json:"last_24_hours"`
}

type TriageListResponse struct {
	Alerts     []TriageAlert   `json:"alerts"`
	Pagination Pagination      `json:"pagination"`
	Statistics AlertStatistics `json:"statistics"`
}

type UpdateAlertResponse struct {
	Message string            `json:"message"`
	Alert   ResolvedAlertView `json:"alert"`
}

// ResolvedAlertView echoes the updated alert plus the acting admin's name.
// ResolvedBy is not persisted; it is not retrievable on a later read.
type ResolvedAlertView struct {
	ID            uuid.UUID  `json:"id"`
	AreaOfConcern string     `json:"area_of_concern"`
	Description   string     `json:"description,omitempty"`
	IsResolved    bool       `json:"is_resolved"`
	ResolvedAt    *time.Time `json:"resolved_at"`
	ResolvedBy    string     `json:"resolved_by"`
}

// AlertNotification is the redacted payload pushed to each active admin.
type AlertNotification struct {
	ID            uuid.UUID `json:"id"`
	AreaOfConcern string    `json:"area_of_concern"`
	Description   string    `json:"description,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Reporter      string    `json:"reporter"`
}
