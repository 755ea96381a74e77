package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrResourceNotFound = errors.New("resource not found")

type ResourceService struct {
	db *gorm.DB
}

func NewResourceService(db *gorm.DB) *ResourceService {
	return &ResourceService{db: db}
}

func (s *ResourceService) CreateResource(req *dto.CreateResourceRequest) (*dto.ResourceView, error) {
	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	resource := models.Resource{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		IsPublic:    isPublic,
	}
	if err := s.db.Create(&resource).Error; err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	view := resourceView(&resource)
	return &view, nil
}

// ListResources shows only public resources to non-admins, grouped by
// category alongside the flat page.
func (s *ResourceService) ListResources(isAdmin bool, filters dto.ResourceFilters, page, limit int) (*dto.ResourceListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	query := s.db.Model(&models.Resource{})
	if !isAdmin {
		query = query.Where("is_public = ?", true)
	}
	if filters.Category != "" {
		query = query.Where("LOWER(category) LIKE ?", "%"+strings.ToLower(filters.Category)+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count resources: %w", err)
	}

	var resources []models.Resource
	if err := query.
		Order("category ASC").
		Order("title ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	views := make([]dto.ResourceView, 0, len(resources))
	byCategory := make(map[string][]dto.ResourceView)
	for i := range resources {
		view := resourceView(&resources[i])
		views = append(views, view)
		byCategory[view.Category] = append(byCategory[view.Category], view)
	}

	categories, err := s.categories(isAdmin)
	if err != nil {
		return nil, err
	}

	return &dto.ResourceListResponse{
		Resources:           views,
		ResourcesByCategory: byCategory,
		Categories:          categories,
		Pagination:          dto.NewPagination(page, limit, totalCount),
		Filters:             filters,
	}, nil
}

func (s *ResourceService) categories(isAdmin bool) ([]string, error) {
	query := s.db.Model(&models.Resource{}).Distinct("category").Order("category ASC")
	if !isAdmin {
		query = query.Where("is_public = ?", true)
	}

	var categories []string
	if err := query.Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list resource categories: %w", err)
	}
	return categories, nil
}

func (s *ResourceService) UpdateResource(resourceID uuid.UUID, req *dto.UpdateResourceRequest) (*dto.ResourceView, error) {
	var resource models.Resource
	if err := s.db.First(&resource, "id = ?", resourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to load resource: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.URL != nil {
		updates["url"] = *req.URL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}

	if len(updates) > 0 {
		if err := s.db.Model(&resource).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update resource: %w", err)
		}
		if err := s.db.First(&resource, "id = ?", resourceID).Error; err != nil {
			return nil, fmt.Errorf("failed to reload resource: %w", err)
		}
	}

	view := resourceView(&resource)
	return &view, nil
}

func (s *ResourceService) DeleteResource(resourceID uuid.UUID) error {
	result := s.db.Delete(&models.Resource{}, "id = ?", resourceID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete resource: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

func resourceView(resource *models.Resource) dto.ResourceView {
	return dto.ResourceView{
		ID:          resource.ID,
		Title:       resource.Title,
		Description: resource.Description,
		URL:         resource.URL,
		Category:    resource.Category,
		IsPublic:    resource.IsPublic,
		CreatedAt:   resource.CreatedAt,
	}
}
