package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCampaignRequest struct {
	Title       string `json:"title" validate:"required,min=1"`
	Date        string `json:"date" validate:"required"`
	Department  string `json:"department" validate:"required,min=1"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=draft scheduled active completed"`
}

type UpdateCampaignRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Date        *string `json:"date"`
	Department  *string `json:"department" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=draft scheduled active completed"`
	Reach       *int    `json:"reach" validate:"omitempty,min=0"`
}

// CampaignView hides reach from non-admin readers.
type CampaignView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Department  string    `json:"department"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Reach       *int      `json:"reach"`
	CreatedAt   time.Time `json:"created_at"`
}

type CampaignStatistics struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Scheduled  int64 `json:"scheduled"`
	Completed  int64 `json:"completed"`
	Draft      int64 `json:"draft"`
	TotalReach int64 `json:"total_reach"`
}

type CampaignFilters struct {
	Status     string `json:"status,omitempty"`
	Department string `json:"department,omitempty"`
}

type CampaignListResponse struct {
	Campaigns  []CampaignView      `json:"campaigns"`
	Pagination Pagination          `json:"pagination"`
	Statistics *CampaignStatistics `json:"statistics"`
	Filters    CampaignFilters     `json:"filters"`
}

type CreateResourceRequest struct {
	Title       string  `json:"title" validate:"required,min=1"`
	Description string  `json:"description"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Category    string  `json:"category" validate:"required,min=1"`
	IsPublic    *bool   `json:"is_public"`
}

type UpdateResourceRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	URL         *string `json:"url" validate:"omitempty,url"`
	Category    *string `json:"category" validate:"omitempty,min=1"`
	IsPublic    *bool   `json:"is_public"`
}

type ResourceView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         *string   `json:"url,omitempty"`
	Category    string    `json:"category"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
}

type ResourceFilters struct {
	Category string `json:"category,omitempty"`
}

type ResourceListResponse struct {
	Resources           []ResourceView            `json:"resources"`
	ResourcesByCategory map[string][]ResourceView `json:"resources_by_category"`
	Categories          []string                  `json:"categories"`
	Pagination          Pagination                `json:"pagination"`
	Filters             ResourceFilters           `json:"filters"`
}
