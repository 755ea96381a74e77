package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrInvalidDate      = errors.New("invalid date format")
)

type CampaignService struct {
	db *gorm.DB
}

func NewCampaignService(db *gorm.DB) *CampaignService {
	return &CampaignService{db: db}
}

func (s *CampaignService) CreateCampaign(req *dto.CreateCampaignRequest) (*dto.CampaignView, error) {
	date, err := parseCampaignDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	status := req.Status
	if status == "" {
		status = models.CampaignDraft
	}

	campaign := models.Campaign{
		Title:       req.Title,
		Date:        date,
		Department:  req.Department,
		Description: req.Description,
		Status:      status,
	}
	if err := s.db.Create(&campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	view := campaignView(&campaign, true)
	return &view, nil
}

// ListCampaigns is visible to every user; reach and the statistics block are
// admin-only.
func (s *CampaignService) ListCampaigns(isAdmin bool, filters dto.CampaignFilters, page, limit int) (*dto.CampaignListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	query := s.db.Model(&models.Campaign{})
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Department != "" {
		query = query.Where("LOWER(department) LIKE ?", "%"+strings.ToLower(filters.Department)+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var campaigns []models.Campaign
	if err := query.
		Order("status ASC").
		Order("date DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	views := make([]dto.CampaignView, 0, len(campaigns))
	for i := range campaigns {
		views = append(views, campaignView(&campaigns[i], isAdmin))
	}

	resp := &dto.CampaignListResponse{
		Campaigns:  views,
		Pagination: dto.NewPagination(page, limit, totalCount),
		Filters:    filters,
	}

	if isAdmin {
		stats, err := s.statistics()
		if err != nil {
			return nil, err
		}
		resp.Statistics = stats
	}

	return resp, nil
}

func (s *CampaignService) statistics() (*dto.CampaignStatistics, error) {
	var stats dto.CampaignStatistics
	counts := map[string]*int64{
		models.CampaignActive:    &stats.Active,
		models.CampaignScheduled: &stats.Scheduled,
		models.CampaignCompleted: &stats.Completed,
		models.CampaignDraft:     &stats.Draft,
	}

	if err := s.db.Model(&models.Campaign{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to compute campaign statistics: %w", err)
	}
	for status, dest := range counts {
		if err := s.db.Model(&models.Campaign{}).Where("status = ?", status).Count(dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute campaign statistics: %w", err)
		}
	}

	var totalReach *int64
	if err := s.db.Model(&models.Campaign{}).
		Where("status = ?", models.CampaignCompleted).
		Select("SUM(reach)").
		Scan(&totalReach).Error; err != nil {
		return nil, fmt.Errorf("failed to compute campaign statistics: %w", err)
	}
	if totalReach != nil {
		stats.TotalReach = *totalReach
	}

	return &stats, nil
}

func (s *CampaignService) UpdateCampaign(campaignID uuid.UUID, req *dto.UpdateCampaignRequest) (*dto.CampaignView, error) {
	var campaign models.Campaign
	if err := s.db.First(&campaign, "id = ?", campaignID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Date != nil {
		date, err := parseCampaignDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		updates["date"] = date
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Reach != nil {
		updates["reach"] = *req.Reach
	}

	if len(updates) > 0 {
		if err := s.db.Model(&campaign).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update campaign: %w", err)
		}
		if err := s.db.First(&campaign, "id = ?", campaignID).Error; err != nil {
			return nil, fmt.Errorf("failed to reload campaign: %w", err)
		}
	}

	view := campaignView(&campaign, true)
	return &view, nil
}

func parseCampaignDate(raw string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date, nil
	}
	return time.Parse("2006-01-02", raw)
}

func campaignView(campaign *models.Campaign, isAdmin bool) dto.CampaignView {
	view := dto.CampaignView{
		ID:          campaign.ID,
		Title:       campaign.Title,
		Date:        campaign.Date,
		Department:  campaign.Department,
		Description: campaign.Description,
		Status:      campaign.Status,
		CreatedAt:   campaign.CreatedAt,
	}
	if isAdmin {
		reach := campaign.Reach
		view.Reach = &reach
	}
	return view
}
