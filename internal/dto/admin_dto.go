package dto

import (
	"time"

	"github.com/google/uuid"
)

type OverviewMetrics struct {
	TotalStudents      int64   `json:"total_students"`
	DailyActiveUsers   int64   `json:"daily_active_users"`
	ActiveCrisisAlerts int64   `json:"active_crisis_alerts"`
	AverageMoodScore   float64 `json:"average_mood_score"`
	TotalMentors       int64   `json:"total_mentors"`
	ActiveConnections  int64   `json:"active_connections"`
	PendingConnections int64   `json:"pending_connections"`
}

type EngagementMetrics struct {
	TotalChatSessions   int64 `json:"total_chat_sessions"`
	TotalMoodEntries    int64 `json:"total_mood_entries"`
	UsersThisWeek       int64 `json:"users_this_week"`
	MoodEntriesThisWeek int64 `json:"mood_entries_this_week"`
}

type RecentAlert struct {
	ID            uuid.UUID `json:"id"`
	AreaOfConcern string    `json:"area_of_concern"`
	Timestamp     time.Time `json:"timestamp"`
	IsResolved    bool      `json:"is_resolved"`
}

type OverviewResponse struct {
	Overview   OverviewMetrics   `json:"overview"`
	Engagement EngagementMetrics `json:"engagement"`
	Trends     struct {
		DailyMoodTrends []DailyMoodAverage `json:"daily_mood_trends"`
	} `json:"trends"`
	Alerts struct {
		Recent      []RecentAlert `json:"recent"`
		TotalActive int64         `json:"total_active"`
	} `json:"alerts"`
}

type HeatmapArea struct {
	Location     string  `json:"location"`
	TotalEntries int     `json:"total_entries"`
	AverageMood  float64 `json:"average_mood"`
	StressLevel  float64 `json:"stress_level"`
	Intensity    float64 `json:"intensity"`
}

type HeatmapStatistics struct {
	TotalLocationsTracked int     `json:"total_locations_tracked"`
	TotalEntries          int     `json:"total_entries"`
	AverageCampusMood     float64 `json:"average_campus_mood"`
	HighStressAreas       int     `json:"high_stress_areas"`
	Period                int     `json:"period"`
}

type TrendingStressArea struct {
	Location           string  `json:"location"`
	RecentStressLevel  float64 `json:"recent_stress_level"`
	OverallStressLevel float64 `json:"overall_stress_level"`
	Trend              float64 `json:"trend"`
	EntryCount         int     `json:"entry_count"`
}

type HeatmapMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Days        int       `json:"days"`
}

type HeatmapResponse struct {
	HeatmapData         []HeatmapArea        `json:"heatmap_data"`
	Statistics          HeatmapStatistics    `json:"statistics"`
	TrendingStressAreas []TrendingStressArea `json:"trending_stress_areas"`
	Metadata            HeatmapMetadata      `json:"metadata"`
}
