package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Overview assembles the admin dashboard: platform totals, engagement
// counters, a 7-day mood trend, and the week's most recent alerts.
func (s *AnalyticsService) Overview() (*dto.OverviewResponse, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	var resp dto.OverviewResponse

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&resp.Overview.TotalStudents, s.db.Model(&models.User{}).Where("user_type = ? AND is_active = ?", models.UserTypeStudent, true)},
		{&resp.Overview.ActiveCrisisAlerts, s.db.Model(&models.CrisisAlert{}).Where("is_resolved = ?", false)},
		{&resp.Overview.TotalMentors, s.db.Model(&models.User{}).Where("user_type = ? AND is_active = ?", models.UserTypeMentor, true)},
		{&resp.Overview.ActiveConnections, s.db.Model(&models.Connection{}).Where("status = ?", models.ConnectionAccepted)},
		{&resp.Overview.PendingConnections, s.db.Model(&models.Connection{}).Where("status = ?", models.ConnectionPending)},
		{&resp.Engagement.TotalChatSessions, s.db.Model(&models.ChatSession{})},
		{&resp.Engagement.TotalMoodEntries, s.db.Model(&models.MoodEntry{})},
		{&resp.Engagement.UsersThisWeek, s.db.Model(&models.User{}).Where("user_type = ? AND created_at >= ?", models.UserTypeStudent, weekAgo)},
		{&resp.Engagement.MoodEntriesThisWeek, s.db.Model(&models.MoodEntry{}).Where("timestamp >= ?", weekAgo)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute overview metrics: %w", err)
		}
	}

	// Students who checked in or messaged the assistant today.
	if err := s.db.Model(&models.User{}).
		Where("user_type = ? AND is_active = ?", models.UserTypeStudent, true).
		Where(`id IN (?) OR id IN (?)`,
			s.db.Model(&models.MoodEntry{}).Select("user_id").Where("timestamp >= ?", today),
			s.db.Model(&models.ChatSession{}).Select("chat_sessions.user_id").
				Joins("JOIN chat_messages ON chat_messages.session_id = chat_sessions.id").
				Where("chat_messages.timestamp >= ?", today),
		).
		Count(&resp.Overview.DailyActiveUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to compute daily active users: %w", err)
	}

	avg, err := s.averageMood(monthAgo, now)
	if err != nil {
		return nil, err
	}
	resp.Overview.AverageMoodScore = avg

	trends, err := s.dailyTrends(today)
	if err != nil {
		return nil, err
	}
	resp.Trends.DailyMoodTrends = trends

	var recent []models.CrisisAlert
	if err := s.db.Where("timestamp >= ?", weekAgo).
		Order("timestamp DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent alerts: %w", err)
	}
	for _, alert := range recent {
		resp.Alerts.Recent = append(resp.Alerts.Recent, dto.RecentAlert{
			ID:            alert.ID,
			AreaOfConcern: alert.AreaOfConcern,
			Timestamp:     alert.Timestamp,
			IsResolved:    alert.IsResolved,
		})
	}
	resp.Alerts.TotalActive = resp.Overview.ActiveCrisisAlerts

	return &resp, nil
}

func (s *AnalyticsService) averageMood(from, to time.Time) (float64, error) {
	var entries []models.MoodEntry
	if err := s.db.Select("mood_score").
		Where("timestamp >= ? AND timestamp < ?", from, to).
		Find(&entries).Error; err != nil {
		return 0, fmt.Errorf("failed to load mood scores: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	sum := 0
	for i := range entries {
		sum += entries[i].MoodScore
	}
	return round2(float64(sum) / float64(len(entries))), nil
}

func (s *AnalyticsService) dailyTrends(today time.Time) ([]dto.DailyMoodAverage, error) {
	trends := make([]dto.DailyMoodAverage, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		next := day.AddDate(0, 0, 1)

		var entries []models.MoodEntry
		if err := s.db.Select("mood_score").
			Where("timestamp >= ? AND timestamp < ?", day, next).
			Find(&entries).Error; err != nil {
			return nil, fmt.Errorf("failed to load daily mood trend: %w", err)
		}

		average := 0.0
		if len(entries) > 0 {
			sum := 0
			for j := range entries {
				sum += entries[j].MoodScore
			}
			average = round2(float64(sum) / float64(len(entries)))
		}
		trends = append(trends, dto.DailyMoodAverage{
			Date:        day.Format("2006-01-02"),
			AverageMood: average,
			EntryCount:  len(entries),
		})
	}
	return trends, nil
}

// Heatmap aggregates located check-ins into per-location stress levels.
// Stress is the inverted mood scale (6 - mood), so 5 is maximal stress.
func (s *AnalyticsService) Heatmap(days int) (*dto.HeatmapResponse, error) {
	if days < 1 {
		days = 7
	}
	now := time.Now()
	startDate := now.AddDate(0, 0, -days)

	entries, err := s.locatedEntries(startDate)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		sum   int
		count int
	}
	byLocation := make(map[string]*bucket)
	totalSum := 0
	for i := range entries {
		loc := *entries[i].Location
		b, ok := byLocation[loc]
		if !ok {
			b = &bucket{}
			byLocation[loc] = b
		}
		b.sum += entries[i].MoodScore
		b.count++
		totalSum += entries[i].MoodScore
	}

	areas := make([]dto.HeatmapArea, 0, len(byLocation))
	for loc, b := range byLocation {
		average := float64(b.sum) / float64(b.count)
		areas = append(areas, dto.HeatmapArea{
			Location:     loc,
			TotalEntries: b.count,
			AverageMood:  round2(average),
			StressLevel:  round2(6 - average),
			Intensity:    math.Min(float64(b.count)/10, 1),
		})
	}
	sort.Slice(areas, func(i, j int) bool {
		return areas[i].StressLevel > areas[j].StressLevel
	})

	highStress := 0
	for _, area := range areas {
		if area.StressLevel > 3.5 {
			highStress++
		}
	}

	campusAverage := 0.0
	if len(entries) > 0 {
		campusAverage = round2(float64(totalSum) / float64(len(entries)))
	}

	trending, err := s.trendingAreas(days, areas)
	if err != nil {
		return nil, err
	}

	return &dto.HeatmapResponse{
		HeatmapData: areas,
		Statistics: dto.HeatmapStatistics{
			TotalLocationsTracked: len(areas),
			TotalEntries:          len(entries),
			AverageCampusMood:     campusAverage,
			HighStressAreas:       highStress,
			Period:                days,
		},
		TrendingStressAreas: trending,
		Metadata: dto.HeatmapMetadata{
			GeneratedAt: now,
			StartDate:   startDate,
			EndDate:     now,
			Days:        days,
		},
	}, nil
}

// trendingAreas flags locations whose stress over the last few days runs
// well above their period average.
func (s *AnalyticsService) trendingAreas(days int, overall []dto.HeatmapArea) ([]dto.TrendingStressArea, error) {
	recentDays := days
	if recentDays > 3 {
		recentDays = 3
	}
	entries, err := s.locatedEntries(time.Now().AddDate(0, 0, -recentDays))
	if err != nil {
		return nil, err
	}

	overallByLocation := make(map[string]dto.HeatmapArea, len(overall))
	for _, area := range overall {
		overallByLocation[area.Location] = area
	}

	type bucket struct {
		sum   int
		count int
	}
	byLocation := make(map[string]*bucket)
	for i := range entries {
		loc := *entries[i].Location
		b, ok := byLocation[loc]
		if !ok {
			b = &bucket{}
			byLocation[loc] = b
		}
		b.sum += entries[i].MoodScore
		b.count++
	}

	trending := make([]dto.TrendingStressArea, 0)
	for loc, b := range byLocation {
		recentAverage := float64(b.sum) / float64(b.count)
		overallAverage := recentAverage
		if area, ok := overallByLocation[loc]; ok {
			overallAverage = area.AverageMood
		}
		trend := (6 - recentAverage) - (6 - overallAverage)
		if trend <= 0.5 {
			continue
		}
		trending = append(trending, dto.TrendingStressArea{
			Location:           loc,
			RecentStressLevel:  round2(6 - recentAverage),
			OverallStressLevel: round2(6 - overallAverage),
			Trend:              round2(trend),
			EntryCount:         b.count,
		})
	}
	sort.Slice(trending, func(i, j int) bool {
		return trending[i].Trend > trending[j].Trend
	})
	if len(trending) > 5 {
		trending = trending[:5]
	}
	return trending, nil
}

func (s *AnalyticsService) locatedEntries(since time.Time) ([]models.MoodEntry, error) {
	var entries []models.MoodEntry
	if err := s.db.Select("mood_score", "location").
		Where("timestamp >= ? AND location IS NOT NULL", since).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to load located mood entries: %w", err)
	}
	return entries, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
