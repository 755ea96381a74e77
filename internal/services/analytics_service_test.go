package services

import (
	"testing"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createLocatedEntry(t *testing.T, db *gorm.DB, user *models.User, location string, score int, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.MoodEntry{
		UserID:    user.ID,
		MoodScore: score,
		Location:  &location,
		Timestamp: at,
	}).Error)
}

func TestOverviewCounters(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db)

	student := createUser(t, db, models.UserTypeStudent, 50)
	createUser(t, db, models.UserTypeStudent, 50)
	inactive := createUser(t, db, models.UserTypeStudent, 50)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	mentor := createUser(t, db, models.UserTypeMentor, 50)

	require.NoError(t, db.Create(&models.Connection{
		StudentID: student.ID, MentorID: mentor.ID, Status: models.ConnectionAccepted,
	}).Error)
	require.NoError(t, db.Create(&models.CrisisAlert{
		UserID: &student.ID, AreaOfConcern: "Library", Timestamp: time.Now().UTC(),
	}).Error)
	require.NoError(t, db.Create(&models.MoodEntry{
		UserID: student.ID, MoodScore: 4, Timestamp: time.Now().UTC(),
	}).Error)

	resp, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Overview.TotalStudents)
	assert.Equal(t, int64(1), resp.Overview.TotalMentors)
	assert.Equal(t, int64(1), resp.Overview.ActiveConnections)
	assert.Equal(t, int64(0), resp.Overview.PendingConnections)
	assert.Equal(t, int64(1), resp.Overview.ActiveCrisisAlerts)
	assert.Equal(t, int64(1), resp.Alerts.TotalActive)
	require.Len(t, resp.Alerts.Recent, 1)
	assert.Equal(t, "Library", resp.Alerts.Recent[0].AreaOfConcern)
}

func TestOverviewDailyActiveUsers(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db)

	checkedIn := createUser(t, db, models.UserTypeStudent, 50)
	chatted := createUser(t, db, models.UserTypeStudent, 50)
	idle := createUser(t, db, models.UserTypeStudent, 50)

	require.NoError(t, db.Create(&models.MoodEntry{
		UserID: checkedIn.ID, MoodScore: 3, Timestamp: time.Now().UTC(),
	}).Error)
	// A check-in from yesterday does not count toward today.
	require.NoError(t, db.Create(&models.MoodEntry{
		UserID: idle.ID, MoodScore: 3, Timestamp: time.Now().UTC().AddDate(0, 0, -1),
	}).Error)

	session := models.ChatSession{UserID: chatted.ID}
	require.NoError(t, db.Create(&session).Error)
	require.NoError(t, db.Create(&models.ChatMessage{
		SessionID: session.ID, SenderType: models.SenderTypeUser, Text: "hi", Timestamp: time.Now().UTC(),
	}).Error)

	resp, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Overview.DailyActiveUsers)
}

func TestOverviewMoodTrend(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db)
	student := createUser(t, db, models.UserTypeStudent, 50)

	noon := time.Date(time.Now().Year(), time.Now().Month(), time.Now().Day(), 12, 0, 0, 0, time.Local)
	require.NoError(t, db.Create(&models.MoodEntry{UserID: student.ID, MoodScore: 4, Timestamp: noon}).Error)
	require.NoError(t, db.Create(&models.MoodEntry{UserID: student.ID, MoodScore: 2, Timestamp: noon}).Error)
	require.NoError(t, db.Create(&models.MoodEntry{UserID: student.ID, MoodScore: 3, Timestamp: noon.AddDate(0, 0, -1)}).Error)

	resp, err := svc.Overview()
	require.NoError(t, err)
	require.Len(t, resp.Trends.DailyMoodTrends, 7)

	today := resp.Trends.DailyMoodTrends[6]
	assert.Equal(t, noon.Format("2006-01-02"), today.Date)
	assert.Equal(t, 3.0, today.AverageMood)
	assert.Equal(t, 2, today.EntryCount)
	yesterday := resp.Trends.DailyMoodTrends[5]
	assert.Equal(t, 3.0, yesterday.AverageMood)
	assert.Equal(t, 1, yesterday.EntryCount)
	assert.Equal(t, 0, resp.Trends.DailyMoodTrends[0].EntryCount)
	// Whether today's noon entries have happened yet or not, the average is 3.
	assert.Equal(t, 3.0, resp.Overview.AverageMoodScore)
}

func TestHeatmapAggregation(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db)
	student := createUser(t, db, models.UserTypeStudent, 50)

	now := time.Now().UTC()
	// Library: two low-mood entries, high stress.
	createLocatedEntry(t, db, student, "Library", 1, now.Add(-time.Hour))
	createLocatedEntry(t, db, student, "Library", 2, now.Add(-2*time.Hour))
	// Gym: one good entry.
	createLocatedEntry(t, db, student, "Gym", 5, now.Add(-time.Hour))
	// Unlocated entries are ignored.
	require.NoError(t, db.Create(&models.MoodEntry{UserID: student.ID, MoodScore: 1, Timestamp: now}).Error)

	resp, err := svc.Heatmap(7)
	require.NoError(t, err)
	require.Len(t, resp.HeatmapData, 2)

	library := resp.HeatmapData[0]
	assert.Equal(t, "Library", library.Location)
	assert.Equal(t, 1.5, library.AverageMood)
	assert.Equal(t, 4.5, library.StressLevel)
	assert.Equal(t, 2, library.TotalEntries)
	assert.Equal(t, 0.2, library.Intensity)

	gym := resp.HeatmapData[1]
	assert.Equal(t, "Gym", gym.Location)
	assert.Equal(t, 1.0, gym.StressLevel)

	assert.Equal(t, 2, resp.Statistics.TotalLocationsTracked)
	assert.Equal(t, 3, resp.Statistics.TotalEntries)
	assert.Equal(t, 1, resp.Statistics.HighStressAreas)
	assert.Equal(t, 7, resp.Statistics.Period)
}

func TestHeatmapTrendingAreas(t *testing.T) {
	db := testDB(t)
	svc := NewAnalyticsService(db)
	student := createUser(t, db, models.UserTypeStudent, 50)

	now := time.Now().UTC()
	// Dorm mood collapsed recently: good entries a week back, bad ones today.
	createLocatedEntry(t, db, student, "Dorm", 5, now.AddDate(0, 0, -6))
	createLocatedEntry(t, db, student, "Dorm", 5, now.AddDate(0, 0, -5))
	createLocatedEntry(t, db, student, "Dorm", 1, now.Add(-time.Hour))
	createLocatedEntry(t, db, student, "Dorm", 1, now.Add(-2*time.Hour))
	// Cafeteria is steady and should not trend.
	createLocatedEntry(t, db, student, "Cafeteria", 3, now.AddDate(0, 0, -5))
	createLocatedEntry(t, db, student, "Cafeteria", 3, now.Add(-time.Hour))

	resp, err := svc.Heatmap(7)
	require.NoError(t, err)
	require.Len(t, resp.TrendingStressAreas, 1)

	dorm := resp.TrendingStressAreas[0]
	assert.Equal(t, "Dorm", dorm.Location)
	assert.Equal(t, 5.0, dorm.RecentStressLevel)
	assert.Equal(t, 3.0, dorm.OverallStressLevel)
	assert.Equal(t, 2.0, dorm.Trend)
	assert.Equal(t, 2, dorm.EntryCount)
}

func TestHeatmapEmpty(t *testing.T) {
	svc := NewAnalyticsService(testDB(t))

	resp, err := svc.Heatmap(0)
	require.NoError(t, err)
	assert.Empty(t, resp.HeatmapData)
	assert.Equal(t, 0.0, resp.Statistics.AverageCampusMood)
	assert.Equal(t, 7, resp.Metadata.Days)
}
