package services

import (
	"testing"

	"github.com/campuspulse/mental-pulse-backend/internal/database"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, userType string, anonymity int) *models.User {
	t.Helper()
	user := &models.User{
		Email:          uuid.NewString() + "@campus.edu",
		PasswordHash:   "x",
		FullName:       "Jordan Blake",
		UserType:       userType,
		AnonymityLevel: anonymity,
		IsActive:       true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
