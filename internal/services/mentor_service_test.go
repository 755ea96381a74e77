package services

import (
	"encoding/json"
	"testing"

	"github.com/campuspulse/mental-pulse-backend/internal/dto"
	"github.com/campuspulse/mental-pulse-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createMentorWithProfile(t *testing.T, db *gorm.DB, anonymity int, department string, specialties []string) (*models.User, *models.MentorProfile) {
	t.Helper()
	user := createUser(t, db, models.UserTypeMentor, anonymity)

	raw, err := json.Marshal(specialties)
	require.NoError(t, err)
	profile := &models.MentorProfile{
		UserID:      user.ID,
		Department:  department,
		Year:        "Senior",
		Specialties: raw,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(profile).Error)
	return user, profile
}

func TestListMentorsRedactsByAnonymity(t *testing.T) {
	db := testDB(t)
	svc := NewMentorService(db)

	createMentorWithProfile(t, db, 80, "Psychology", []string{"stress"})
	visible, _ := createMentorWithProfile(t, db, 30, "Biology", []string{"anxiety"})

	resp, err := svc.ListMentors(dto.MentorFilters{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Mentors, 2)

	names := map[string]bool{}
	for _, m := range resp.Mentors {
		names[m.User.FullName] = true
		assert.Nil(t, m.User.Email)
	}
	assert.True(t, names["Anonymous Mentor"])
	assert.True(t, names[visible.FullName])
}

func TestListMentorsFilters(t *testing.T) {
	db := testDB(t)
	svc := NewMentorService(db)

	createMentorWithProfile(t, db, 30, "Psychology", []string{"stress", "burnout"})
	createMentorWithProfile(t, db, 30, "Biology", []string{"anxiety"})
	_, unavailable := createMentorWithProfile(t, db, 30, "Psychology", []string{"stress"})
	require.NoError(t, db.Model(unavailable).Update("is_available", false).Error)

	resp, err := svc.ListMentors(dto.MentorFilters{Department: "psych"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Mentors, 1)
	assert.Equal(t, "Psychology", resp.Mentors[0].Department)

	resp, err = svc.ListMentors(dto.MentorFilters{Specialty: "anxiety"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Mentors, 1)
	assert.Equal(t, "Biology", resp.Mentors[0].Department)

	resp, err = svc.ListMentors(dto.MentorFilters{Available: "false"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Mentors, 1)
	assert.False(t, resp.Mentors[0].IsAvailable)
}

func TestGetMentorEmailVisibility(t *testing.T) {
	db := testDB(t)
	svc := NewMentorService(db)
	viewer := createUser(t, db, models.UserTypeStudent, 50)

	mentorUser, profile := createMentorWithProfile(t, db, 50, "Psychology", []string{"stress"})

	// Mid anonymity, no connection: no email, no stats.
	view, err := svc.GetMentor(profile.ID, viewer.ID)
	require.NoError(t, err)
	assert.Nil(t, view.User.Email)
	assert.Nil(t, view.Stats)
	assert.Nil(t, view.ConnectionStatus)

	// An accepted connection reveals email and stats.
	require.NoError(t, db.Create(&models.Connection{
		StudentID: viewer.ID,
		MentorID:  mentorUser.ID,
		Status:    models.ConnectionAccepted,
	}).Error)

	view, err = svc.GetMentor(profile.ID, viewer.ID)
	require.NoError(t, err)
	require.NotNil(t, view.User.Email)
	assert.Equal(t, mentorUser.Email, *view.User.Email)
	require.NotNil(t, view.Stats)
	assert.Equal(t, int64(1), view.Stats.ActiveConnections)
	require.NotNil(t, view.ConnectionStatus)
	assert.Equal(t, models.ConnectionAccepted, *view.ConnectionStatus)
}

func TestCreateProfile(t *testing.T) {
	db := testDB(t)
	svc := NewMentorService(db)

	student := createUser(t, db, models.UserTypeStudent, 50)
	_, err := svc.CreateProfile(student, &dto.MentorProfileRequest{
		Department: "Psychology", Year: "Senior", Specialties: []string{"stress"},
	})
	assert.ErrorIs(t, err, ErrNotMentor)

	mentor := createUser(t, db, models.UserTypeMentor, 50)
	view, err := svc.CreateProfile(mentor, &dto.MentorProfileRequest{
		Department: "Psychology", Year: "Senior", Specialties: []string{"stress", "sleep"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"stress", "sleep"}, view.Specialties)
	assert.True(t, view.IsAvailable)

	_, err = svc.CreateProfile(mentor, &dto.MentorProfileRequest{
		Department: "Biology", Year: "Junior", Specialties: []string{"anxiety"},
	})
	assert.ErrorIs(t, err, ErrProfileExists)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := testDB(t)
	svc := NewMentorService(db)

	mentor, _ := createMentorWithProfile(t, db, 50, "Psychology", []string{"stress"})

	newBio := "here to help"
	unavailable := false
	view, err := svc.UpdateProfile(mentor, &dto.UpdateMentorProfileRequest{
		Bio: &newBio, IsAvailable: &unavailable,
	})
	require.NoError(t, err)
	assert.Equal(t, "here to help", view.Bio)
	assert.False(t, view.IsAvailable)
	// Untouched fields survive.
	assert.Equal(t, "Psychology", view.Department)
	assert.Equal(t, []string{"stress"}, view.Specialties)
}

func TestUpdateProfileWithoutProfile(t *testing.T) {
	db := testDB(t)
	svc := NewMentorService(db)
	mentor := createUser(t, db, models.UserTypeMentor, 50)

	bio := "x"
	_, err := svc.UpdateProfile(mentor, &dto.UpdateMentorProfileRequest{Bio: &bio})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
