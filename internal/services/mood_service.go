package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentRejectedError carries the filter verdict on user-authored text.
type ContentRejectedError struct {
	Reason  string
	Message string
}

func (e *ContentRejectedError) Error() string {
	return e.Message
}

type MoodService struct {
	db     *gorm.DB
	filter *ContentFilter
}

func NewMoodService(db *gorm.DB, filter *ContentFilter) *MoodService {
	return &MoodService{db: db, filter: filter}
}

func (s *MoodService) CreateEntry(userID uuid.UUID, req *dto.CreateMoodEntryRequest) (*dto.MoodEntryResponse, error) {
	if ok, reason := s.filter.Check(req.Notes); !ok {
		return nil, &ContentRejectedError{Reason: reason, Message: s.filter.RejectionMessage(reason)}
	}

	entry := models.MoodEntry{
		UserID:    userID,
		MoodScore: req.MoodScore,
		Notes:     req.Notes,
		Location:  req.Location,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	view := moodEntryView(&entry)
	return &view, nil
}

func (s *MoodService) ListEntries(userID uuid.UUID, page, limit int) (*dto.MoodListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var totalCount int64
	if err := s.db.Model(&models.MoodEntry{}).Where("user_id = ?", userID).Count(&totalCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count mood entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}

	views := make([]dto.MoodEntryResponse, 0, len(entries))
	for i := range entries {
		views = append(views, moodEntryView(&entries[i]))
	}

	return &dto.MoodListResponse{
		MoodEntries: views,
		Pagination:  dto.NewPagination(page, limit, totalCount),
	}, nil
}

// History returns the last `days` days of entries with an average, the
// current consecutive-day streak, and per-day averages for trend charts.
func (s *MoodService) History(userID uuid.UUID, days int) (*dto.MoodHistoryResponse, error) {
	if days < 1 {
		days = 30
	}
	startDate := time.Now().AddDate(0, 0, -days)

	var entries []models.MoodEntry
	if err := s.db.Where("user_id = ? AND timestamp >= ?", userID, startDate).
		Order("timestamp DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load mood history: %w", err)
	}

	history := make([]dto.MoodEntryResponse, 0, len(entries))
	sum := 0
	for i := range entries {
		history = append(history, moodEntryView(&entries[i]))
		sum += entries[i].MoodScore
	}

	average := 0.0
	if len(entries) > 0 {
		average = math.Round(float64(sum)/float64(len(entries))*100) / 100
	}

	return &dto.MoodHistoryResponse{
		History: history,
		Statistics: dto.MoodHistoryStatistics{
			TotalEntries: len(entries),
			AverageMood:  average,
			Streak:       streak(entries, days),
			Period:       days,
		},
		DailyAverages: dailyAverages(entries),
	}, nil
}

// streak counts consecutive calendar days with at least one entry, walking
// back from today; a gap day ends the streak.
func streak(entries []models.MoodEntry, maxDays int) int {
	byDay := make(map[string]bool, len(entries))
	for i := range entries {
		byDay[entries[i].Timestamp.Local().Format("2006-01-02")] = true
	}

	count := 0
	day := time.Now()
	for count < maxDays {
		if !byDay[day.Format("2006-01-02")] {
			break
		}
		count++
		day = day.AddDate(0, 0, -1)
	}
	return count
}

func dailyAverages(entries []models.MoodEntry) []dto.DailyMoodAverage {
	type bucket struct {
		sum   int
		count int
	}
	byDay := make(map[string]*bucket)
	for i := range entries {
		date := entries[i].Timestamp.UTC().Format("2006-01-02")
		b, ok := byDay[date]
		if !ok {
			b = &bucket{}
			byDay[date] = b
		}
		b.sum += entries[i].MoodScore
		b.count++
	}

	dates := make([]string, 0, len(byDay))
	for date := range byDay {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	averages := make([]dto.DailyMoodAverage, 0, len(dates))
	for _, date := range dates {
		b := byDay[date]
		averages = append(averages, dto.DailyMoodAverage{
			Date:        date,
			AverageMood: math.Round(float64(b.sum)/float64(b.count)*100) / 100,
			EntryCount:  b.count,
		})
	}
	return averages
}

func moodEntryView(entry *models.MoodEntry) dto.MoodEntryResponse {
	return dto.MoodEntryResponse{
		ID:        entry.ID,
		MoodScore: entry.MoodScore,
		Notes:     entry.Notes,
		Location:  entry.Location,
		Timestamp: entry.Timestamp,
	}
}
