package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuspulse/mental-pulse-backend/internal/authn"
	"github.com/campuspulse/mental-pulse-backend/internal/database"
	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/campuspulse/mental-pulse-backend/internal/realtime"
	"github.com/campuspulse/mental-pulse-backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCrisisApp(t *testing.T) (*fiber.App, *gorm.DB, *models.User) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	admin := &models.User{
		Email:          uuid.NewString() + "@campus.edu",
		PasswordHash:   "x",
		FullName:       "Riley Park",
		UserType:       models.UserTypeAdmin,
		AnonymityLevel: 50,
		IsActive:       true,
	}
	require.NoError(t, db.Create(admin).Error)

	h := NewCrisisHandler(services.NewCrisisService(db, realtime.NewHub()))
	app := fiber.New()
	app.Patch("/api/admin/crisis-alerts", func(c *fiber.Ctx) error {
		authn.SetCurrentUser(c, admin)
		return c.Next()
	}, h.UpdateAlert)
	return app, db, admin
}

func patchAlert(t *testing.T, app *fiber.App, alertID uuid.UUID, resolved bool) dto.UpdateAlertResponse {
	t.Helper()
	body, err := json.Marshal(dto.UpdateAlertRequest{AlertID: alertID.String(), IsResolved: &resolved})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPatch, "/api/admin/crisis-alerts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded dto.UpdateAlertResponse
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestUpdateAlertEchoesAdminNameOnBothTransitions(t *testing.T) {
	app, db, admin := newCrisisApp(t)

	alert := &models.CrisisAlert{AreaOfConcern: "Library", Timestamp: time.Now().UTC()}
	require.NoError(t, db.Create(alert).Error)

	resolved := patchAlert(t, app, alert.ID, true)
	assert.Equal(t, "Crisis alert resolved successfully", resolved.Message)
	assert.True(t, resolved.Alert.IsResolved)
	assert.Equal(t, admin.FullName, resolved.Alert.ResolvedBy)

	reopened := patchAlert(t, app, alert.ID, false)
	assert.Equal(t, "Crisis alert reopened successfully", reopened.Message)
	assert.False(t, reopened.Alert.IsResolved)
	assert.Nil(t, reopened.Alert.ResolvedAt)
	assert.Equal(t, admin.FullName, reopened.Alert.ResolvedBy)
}

func TestUpdateAlertUnknownID(t *testing.T) {
	app, _, _ := newCrisisApp(t)

	resolved := true
	body, err := json.Marshal(dto.UpdateAlertRequest{AlertID: uuid.NewString(), IsResolved: &resolved})
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodPatch, "/api/admin/crisis-alerts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
