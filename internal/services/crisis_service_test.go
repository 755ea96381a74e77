package services

import (
	"sync"
	"testing"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeNotifier records fan-out attempts and reports a configurable set of
// connected users.
type fakeNotifier struct {
	mu        sync.Mutex
	connected map[uuid.UUID]bool
	sent      []sentEvent
}

type sentEvent struct {
	userID  uuid.UUID
	event   string
	payload interface{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{connected: make(map[uuid.UUID]bool)}
}

func (f *fakeNotifier) Send(userID uuid.UUID, event string, payload interface{}) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentEvent{userID: userID, event: event, payload: payload})
	return f.connected[userID]
}

func newCrisisFixture(t *testing.T) (*CrisisService, *gorm.DB, *fakeNotifier) {
	db := testDB(t)
	notifier := newFakeNotifier()
	return NewCrisisService(db, notifier), db, notifier
}

func createAlertAt(t *testing.T, db *gorm.DB, reporter *models.User, area string, ts time.Time, resolved bool) *models.CrisisAlert {
	t.Helper()
	alert := &models.CrisisAlert{
		UserID:        &reporter.ID,
		AreaOfConcern: area,
		Description:   "test alert",
		Timestamp:     ts,
		IsResolved:    resolved,
	}
	if resolved {
		resolvedAt := ts.Add(time.Hour)
		alert.ResolvedAt = &resolvedAt
	}
	require.NoError(t, db.Create(alert).Error)
	return alert
}

func TestCreateAlertNotifiesActiveAdmins(t *testing.T) {
	svc, db, notifier := newCrisisFixture(t)

	reporter := createUser(t, db, models.UserTypeStudent, 20)
	admin1 := createUser(t, db, models.UserTypeAdmin, 0)
	admin2 := createUser(t, db, models.UserTypeAdmin, 0)
	inactive := createUser(t, db, models.UserTypeAdmin, 0)
	require.NoError(t, db.Model(inactive).Update("is_active", false).Error)
	createUser(t, db, models.UserTypeStudent, 0)

	notifier.connected[admin1.ID] = true

	alert, err := svc.CreateAlert(reporter, &dto.CreateAlertRequest{
		AreaOfConcern: "Library", Description: "Someone needs help",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, alert.ID)
	assert.False(t, alert.IsResolved)
	assert.Nil(t, alert.ResolvedAt)

	targets := map[uuid.UUID]bool{}
	for _, ev := range notifier.sent {
		assert.Equal(t, "crisis-alert", ev.event)
		targets[ev.userID] = true
	}
	assert.True(t, targets[admin1.ID])
	assert.True(t, targets[admin2.ID])
	assert.False(t, targets[inactive.ID])
	assert.Len(t, notifier.sent, 2)
}

func TestCreateAlertRedactsReporterInNotification(t *testing.T) {
	svc, db, notifier := newCrisisFixture(t)

	reporter := createUser(t, db, models.UserTypeStudent, 80)
	admin := createUser(t, db, models.UserTypeAdmin, 0)
	notifier.connected[admin.ID] = true

	_, err := svc.CreateAlert(reporter, &dto.CreateAlertRequest{AreaOfConcern: "Dormitory"})
	require.NoError(t, err)

	require.Len(t, notifier.sent, 1)
	payload, ok := notifier.sent[0].payload.(dto.AlertNotification)
	require.True(t, ok)
	assert.Equal(t, "Anonymous Student", payload.Reporter)
}

func TestCreateAlertSucceedsWithNoAdminsConnected(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)

	alert, err := svc.CreateAlert(reporter, &dto.CreateAlertRequest{AreaOfConcern: "Cafeteria"})
	require.NoError(t, err)

	var stored models.CrisisAlert
	require.NoError(t, db.First(&stored, "id = ?", alert.ID).Error)
	assert.Equal(t, "Cafeteria", stored.AreaOfConcern)
}

func TestListAlertsOrdersActiveBeforeResolved(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)

	base := time.Now().Add(-3 * time.Hour)
	resolvedNewest := createAlertAt(t, db, reporter, "resolved-new", base.Add(2*time.Hour), true)
	activeOld := createAlertAt(t, db, reporter, "active-old", base, false)
	activeNew := createAlertAt(t, db, reporter, "active-new", base.Add(time.Hour), false)

	resp, err := svc.ListAlerts("", 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Alerts, 3)

	// Unresolved first (newest first within group), resolved last even
	// though it has the newest timestamp.
	assert.Equal(t, activeNew.ID, resp.Alerts[0].ID)
	assert.Equal(t, activeOld.ID, resp.Alerts[1].ID)
	assert.Equal(t, resolvedNewest.ID, resp.Alerts[2].ID)
}

func TestListAlertsStatisticsAreGlobal(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)

	now := time.Now()
	createAlertAt(t, db, reporter, "a", now.Add(-time.Hour), false)
	createAlertAt(t, db, reporter, "b", now.Add(-2*time.Hour), true)
	createAlertAt(t, db, reporter, "c", now.Add(-48*time.Hour), true)

	resp, err := svc.ListAlerts("resolved", 1, 20)
	require.NoError(t, err)

	assert.Len(t, resp.Alerts, 2)
	assert.Equal(t, int64(3), resp.Statistics.Total)
	assert.Equal(t, int64(1), resp.Statistics.Active)
	assert.Equal(t, int64(2), resp.Statistics.Resolved)
	assert.Equal(t, int64(2), resp.Statistics.Last24Hours)
}

func TestListAlertsPagination(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)

	base := time.Now().Add(-time.Hour)
	createAlertAt(t, db, reporter, "first", base, false)
	second := createAlertAt(t, db, reporter, "second", base.Add(10*time.Minute), false)
	createAlertAt(t, db, reporter, "third", base.Add(20*time.Minute), false)

	resp, err := svc.ListAlerts("", 2, 1)
	require.NoError(t, err)

	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, second.ID, resp.Alerts[0].ID)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, int64(3), resp.Pagination.TotalCount)
	assert.Equal(t, int64(3), resp.Pagination.TotalPages)
}

func TestListAlertsEnrichesPriorityAndReporter(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)
	createAlertAt(t, db, reporter, "Dormitory", time.Now().Add(-time.Minute), false)

	resp, err := svc.ListAlerts("", 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Alerts, 1)

	row := resp.Alerts[0]
	assert.Equal(t, PriorityMedium, row.Priority)
	assert.Equal(t, "Jordan Blake", row.Reporter.Name)
	require.NotNil(t, row.Reporter.Email)
	assert.True(t, row.Reporter.CanContact)
	assert.Greater(t, row.TimeElapsedMs, int64(0))
}

func TestListAlertsRedactionFollowsCurrentAnonymity(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)
	createAlertAt(t, db, reporter, "Library", time.Now(), false)

	resp, err := svc.ListAlerts("", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Blake", resp.Alerts[0].Reporter.Name)

	// Raising anonymity after the fact redacts past alerts on the next read.
	require.NoError(t, db.Model(reporter).Update("anonymity_level", 80).Error)

	resp, err = svc.ListAlerts("", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, "Anonymous Student", resp.Alerts[0].Reporter.Name)
	assert.Nil(t, resp.Alerts[0].Reporter.Email)
	assert.False(t, resp.Alerts[0].Reporter.CanContact)
}

func TestListAlertsMissingReporter(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)

	alert := &models.CrisisAlert{AreaOfConcern: "Parking", Timestamp: time.Now()}
	require.NoError(t, db.Create(alert).Error)

	resp, err := svc.ListAlerts("", 1, 20)
	require.NoError(t, err)
	require.Len(t, resp.Alerts, 1)

	reporter := resp.Alerts[0].Reporter
	assert.Equal(t, "Anonymous", reporter.Name)
	assert.Nil(t, reporter.ID)
	assert.Nil(t, reporter.Email)
	assert.False(t, reporter.CanContact)
}

func TestSetResolvedLifecycle(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)
	alert := createAlertAt(t, db, reporter, "Library", time.Now(), false)

	resolved, err := svc.SetResolved(alert.ID, true)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	require.NotNil(t, resolved.ResolvedAt)
	firstResolvedAt := *resolved.ResolvedAt

	// Resolving again stamps a fresh timestamp.
	time.Sleep(10 * time.Millisecond)
	resolved, err = svc.SetResolved(alert.ID, true)
	require.NoError(t, err)
	require.NotNil(t, resolved.ResolvedAt)
	assert.True(t, resolved.ResolvedAt.After(firstResolvedAt))

	// Reopening clears the timestamp.
	reopened, err := svc.SetResolved(alert.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.IsResolved)
	assert.Nil(t, reopened.ResolvedAt)

	var stored models.CrisisAlert
	require.NoError(t, db.First(&stored, "id = ?", alert.ID).Error)
	assert.False(t, stored.IsResolved)
	assert.Nil(t, stored.ResolvedAt)
}

func TestSetResolvedUnknownAlert(t *testing.T) {
	svc, db, _ := newCrisisFixture(t)
	reporter := createUser(t, db, models.UserTypeStudent, 20)
	existing := createAlertAt(t, db, reporter, "Library", time.Now(), false)

	_, err := svc.SetResolved(uuid.New(), true)
	assert.ErrorIs(t, err, ErrAlertNotFound)

	// Nothing was mutated.
	var stored models.CrisisAlert
	require.NoError(t, db.First(&stored, "id = ?", existing.ID).Error)
	assert.False(t, stored.IsResolved)
}
