package services

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/config"
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB connects to the database named by TEST_DATABASE_URL. These tests
// exercise the upsert paths that only Postgres can honor (ON CONFLICT with
// COALESCE assignments), so there is no in-memory substitute.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.UserProfile{},
		&models.School{},
		&models.Program{},
		&models.Swipe{},
		&models.Application{},
	))
	return db
}

func seedProgram(t *testing.T, db *gorm.DB) *models.Program {
	t.Helper()
	school := models.School{
		ID:          uuid.New(),
		Name:        "Test School " + uuid.NewString(),
		CountryCode: "DE",
		City:        "Berlin",
	}
	require.NoError(t, db.Create(&school).Error)

	program := models.Program{
		ID:          uuid.New(),
		SchoolID:    school.ID,
		Title:       "Test Program " + uuid.NewString(),
		DegreeLevel: models.DegreeMasters,
		Currency:    "EUR",
		City:        "Berlin",
		CountryCode: "DE",
	}
	require.NoError(t, db.Create(&program).Error)
	return &program
}

func seedProfile(t *testing.T, db *gorm.DB) *models.UserProfile {
	t.Helper()
	userID := uuid.New()
	profile := models.UserProfile{
		ID:     uuid.New(),
		UserID: &userID,
		Email:  fmt.Sprintf("%s@example.com", uuid.NewString()),
		Role:   models.RoleUser,
	}
	require.NoError(t, db.Create(&profile).Error)
	return &profile
}

func TestSwipeRecord(t *testing.T) {
	db := testDB(t)
	profiles := NewProfileService(db, &config.Config{})
	swipes := NewSwipeService(db, profiles)
	program := seedProgram(t, db)
	deviceID := "device-" + uuid.NewString()

	t.Run("creates a profile for an unseen device", func(t *testing.T) {
		swipe, err := swipes.Record(deviceID, program.ID, models.SwipeRight)
		require.NoError(t, err)
		assert.Equal(t, models.SwipeRight, swipe.Direction)

		var profile models.UserProfile
		require.NoError(t, db.First(&profile, "device_id = ?", deviceID).Error)
		assert.Equal(t, profile.ID, swipe.UserID)
	})

	t.Run("same swipe twice keeps a single row", func(t *testing.T) {
		first, err := swipes.Record(deviceID, program.ID, models.SwipeRight)
		require.NoError(t, err)
		second, err := swipes.Record(deviceID, program.ID, models.SwipeRight)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		var count int64
		require.NoError(t, db.Model(&models.Swipe{}).
			Where("user_id = ? AND program_id = ?", first.UserID, program.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("re-swipe overwrites the direction", func(t *testing.T) {
		swipe, err := swipes.Record(deviceID, program.ID, models.SwipeLeft)
		require.NoError(t, err)
		assert.Equal(t, models.SwipeLeft, swipe.Direction)
	})

	t.Run("unknown program is not found", func(t *testing.T) {
		_, err := swipes.Record(deviceID, uuid.New(), models.SwipeRight)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid direction is rejected", func(t *testing.T) {
		_, err := swipes.Record(deviceID, program.ID, "UP")
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestApplicationSave(t *testing.T) {
	db := testDB(t)
	apps := NewApplicationService(db)
	program := seedProgram(t, db)
	profile := seedProfile(t, db)

	t.Run("defaults to SAVED without a timestamp", func(t *testing.T) {
		app, err := apps.Save(profile.ID, &dto.SaveApplicationRequest{ProgramID: program.ID})
		require.NoError(t, err)
		assert.Equal(t, models.StatusSaved, app.Status)
		assert.Nil(t, app.AppliedAt)
	})

	t.Run("re-save upserts instead of duplicating", func(t *testing.T) {
		notes := "second attempt"
		app, err := apps.Save(profile.ID, &dto.SaveApplicationRequest{
			ProgramID: program.ID,
			Status:    models.StatusApplied,
			Notes:     &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, models.StatusApplied, app.Status)
		assert.Equal(t, "second attempt", app.Notes)

		var count int64
		require.NoError(t, db.Model(&models.Application{}).
			Where("user_id = ? AND program_id = ?", profile.ID, program.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown program is not found", func(t *testing.T) {
		_, err := apps.Save(profile.ID, &dto.SaveApplicationRequest{ProgramID: uuid.New()})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := apps.Save(profile.ID, &dto.SaveApplicationRequest{ProgramID: program.ID, Status: "PENDING"})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestApplicationAppliedAtWriteOnce(t *testing.T) {
	db := testDB(t)
	apps := NewApplicationService(db)
	program := seedProgram(t, db)
	profile := seedProfile(t, db)

	applied := models.StatusApplied
	withdrawn := models.StatusWithdrawn

	app, err := apps.Save(profile.ID, &dto.SaveApplicationRequest{ProgramID: program.ID, Status: applied})
	require.NoError(t, err)
	require.NotNil(t, app.AppliedAt)
	stamped := *app.AppliedAt

	// Leaving APPLIED and returning must not refresh the timestamp.
	app, err = apps.Update(profile.ID, &dto.UpdateApplicationRequest{ApplicationID: app.ID, Status: &withdrawn})
	require.NoError(t, err)
	require.NotNil(t, app.AppliedAt)

	app, err = apps.Update(profile.ID, &dto.UpdateApplicationRequest{ApplicationID: app.ID, Status: &applied})
	require.NoError(t, err)
	require.NotNil(t, app.AppliedAt)
	assert.WithinDuration(t, stamped, *app.AppliedAt, time.Millisecond)

	// Re-saving as APPLIED goes through the upsert path; COALESCE keeps the
	// original stamp there too.
	app, err = apps.Save(profile.ID, &dto.SaveApplicationRequest{ProgramID: program.ID, Status: applied})
	require.NoError(t, err)
	require.NotNil(t, app.AppliedAt)
	assert.WithinDuration(t, stamped, *app.AppliedAt, time.Millisecond)
}

func TestApplicationOwnership(t *testing.T) {
	db := testDB(t)
	apps := NewApplicationService(db)
	program := seedProgram(t, db)
	owner := seedProfile(t, db)
	stranger := seedProfile(t, db)

	app, err := apps.Save(owner.ID, &dto.SaveApplicationRequest{ProgramID: program.ID})
	require.NoError(t, err)

	withdrawn := models.StatusWithdrawn

	t.Run("non-owner update reads as not found", func(t *testing.T) {
		_, err := apps.Update(stranger.ID, &dto.UpdateApplicationRequest{ApplicationID: app.ID, Status: &withdrawn})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-owner delete reads as not found", func(t *testing.T) {
		assert.ErrorIs(t, apps.Delete(stranger.ID, app.ID), ErrNotFound)
	})

	t.Run("non-owner fetch reads as not found", func(t *testing.T) {
		_, err := apps.GetOwned(stranger.ID, app.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("listings stay scoped to the owner", func(t *testing.T) {
		list, err := apps.ListForUser(stranger.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("owner delete removes the row", func(t *testing.T) {
		require.NoError(t, apps.Delete(owner.ID, app.ID))
		_, err := apps.GetOwned(owner.ID, app.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// Admin reads and updates skip the ownership scope but stay inside the same
// appliedAt guard as owner edits.
func TestApplicationAdminAccess(t *testing.T) {
	db := testDB(t)
	apps := NewApplicationService(db)
	program := seedProgram(t, db)
	owner := seedProfile(t, db)

	applied := models.StatusApplied
	accepted := models.StatusAccepted

	app, err := apps.Save(owner.ID, &dto.SaveApplicationRequest{ProgramID: program.ID, Status: applied})
	require.NoError(t, err)
	require.NotNil(t, app.AppliedAt)
	stamped := *app.AppliedAt

	t.Run("reads any user's application", func(t *testing.T) {
		got, err := apps.Get(app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
		assert.Equal(t, owner.ID, got.UserID)
		assert.Equal(t, program.Title, got.Program.Title)
	})

	t.Run("updates any user's application", func(t *testing.T) {
		got, err := apps.AdminUpdate(&dto.UpdateApplicationRequest{ApplicationID: app.ID, Status: &accepted})
		require.NoError(t, err)
		assert.Equal(t, models.StatusAccepted, got.Status)
	})

	t.Run("cannot refresh the applied timestamp either", func(t *testing.T) {
		got, err := apps.AdminUpdate(&dto.UpdateApplicationRequest{ApplicationID: app.ID, Status: &applied})
		require.NoError(t, err)
		require.NotNil(t, got.AppliedAt)
		assert.WithinDuration(t, stamped, *got.AppliedAt, time.Millisecond)
	})

	t.Run("unknown application is not found", func(t *testing.T) {
		_, err := apps.AdminUpdate(&dto.UpdateApplicationRequest{ApplicationID: uuid.New(), Status: &accepted})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestApplicationAdminListStatusFilter(t *testing.T) {
	db := testDB(t)
	apps := NewApplicationService(db)
	program := seedProgram(t, db)
	owner := seedProfile(t, db)

	_, err := apps.Save(owner.ID, &dto.SaveApplicationRequest{ProgramID: program.ID, Status: models.StatusSaved})
	require.NoError(t, err)

	t.Run("filter status is case-insensitive", func(t *testing.T) {
		list, _, _, err := apps.AdminList(&dto.ApplicationFilter{Status: "saved", UserID: &owner.ID})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, models.StatusSaved, list[0].Status)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		_, _, _, err := apps.AdminList(&dto.ApplicationFilter{Status: "PENDING"})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}
