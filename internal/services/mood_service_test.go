package services

import (
	"testing"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMoodFixture(t *testing.T) (*MoodService, *gorm.DB, *models.User) {
	db := testDB(t)
	user := createUser(t, db, models.UserTypeStudent, 50)
	return NewMoodService(db, NewContentFilter()), db, user
}

func createEntryAt(t *testing.T, db *gorm.DB, user *models.User, score int, location *string, ts time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.MoodEntry{
		UserID:    user.ID,
		MoodScore: score,
		Location:  location,
		Timestamp: ts,
	}).Error)
}

func TestCreateEntry(t *testing.T) {
	svc, db, user := newMoodFixture(t)

	loc := "Library"
	entry, err := svc.CreateEntry(user.ID, &dto.CreateMoodEntryRequest{
		MoodScore: 4, Notes: "feeling good today", Location: &loc,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, entry.MoodScore)
	assert.False(t, entry.Timestamp.IsZero())

	var count int64
	require.NoError(t, db.Model(&models.MoodEntry{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateEntryRejectsFilteredNotes(t *testing.T) {
	svc, db, user := newMoodFixture(t)

	_, err := svc.CreateEntry(user.ID, &dto.CreateMoodEntryRequest{
		MoodScore: 3, Notes: "check out https://spam.example",
	})
	var rejected *ContentRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "url_not_allowed", rejected.Reason)

	var count int64
	require.NoError(t, db.Model(&models.MoodEntry{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestListEntriesScopedAndPaginated(t *testing.T) {
	svc, db, user := newMoodFixture(t)
	other := createUser(t, db, models.UserTypeStudent, 50)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		createEntryAt(t, db, user, i+1, nil, base.Add(time.Duration(i)*time.Minute))
	}
	createEntryAt(t, db, other, 5, nil, base)

	resp, err := svc.ListEntries(user.ID, 1, 2)
	require.NoError(t, err)

	require.Len(t, resp.MoodEntries, 2)
	// Newest first.
	assert.Equal(t, 3, resp.MoodEntries[0].MoodScore)
	assert.Equal(t, 2, resp.MoodEntries[1].MoodScore)
	assert.Equal(t, int64(3), resp.Pagination.TotalCount)
	assert.Equal(t, int64(2), resp.Pagination.TotalPages)
}

func TestHistoryStatisticsAndStreak(t *testing.T) {
	svc, db, user := newMoodFixture(t)

	// Anchor at local noon so day boundaries are unambiguous.
	now := time.Now()
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local)
	createEntryAt(t, db, user, 4, nil, noon)
	createEntryAt(t, db, user, 2, nil, noon.AddDate(0, 0, -1))
	createEntryAt(t, db, user, 3, nil, noon.AddDate(0, 0, -2))
	// Gap at day -3, then an older entry that must not extend the streak.
	createEntryAt(t, db, user, 5, nil, noon.AddDate(0, 0, -5))

	resp, err := svc.History(user.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Statistics.TotalEntries)
	assert.Equal(t, 3.5, resp.Statistics.AverageMood)
	assert.Equal(t, 3, resp.Statistics.Streak)
	assert.Equal(t, 30, resp.Statistics.Period)
}

func TestHistoryStreakZeroWithoutTodayEntry(t *testing.T) {
	svc, _, user := newMoodFixture(t)

	resp, err := svc.History(user.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Statistics.Streak)
	assert.Equal(t, 0.0, resp.Statistics.AverageMood)
	assert.Empty(t, resp.History)
}

func TestHistoryDailyAverages(t *testing.T) {
	svc, db, user := newMoodFixture(t)

	day := time.Now().Add(-26 * time.Hour)
	createEntryAt(t, db, user, 2, nil, day)
	createEntryAt(t, db, user, 4, nil, day.Add(time.Minute))

	resp, err := svc.History(user.ID, 30)
	require.NoError(t, err)

	require.NotEmpty(t, resp.DailyAverages)
	found := false
	for _, avg := range resp.DailyAverages {
		if avg.EntryCount == 2 {
			assert.Equal(t, 3.0, avg.AverageMood)
			found = true
		}
	}
	assert.True(t, found)
}

func TestHistoryExcludesOldEntries(t *testing.T) {
	svc, db, user := newMoodFixture(t)

	createEntryAt(t, db, user, 1, nil, time.Now().AddDate(0, 0, -40))
	createEntryAt(t, db, user, 5, nil, time.Now().Add(-time.Hour))

	resp, err := svc.History(user.ID, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Statistics.TotalEntries)
	assert.Equal(t, 5.0, resp.Statistics.AverageMood)
}
