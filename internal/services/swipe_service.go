package services

import (
	"fmt"

	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SwipeService struct {
	db       *gorm.DB
	profiles *ProfileService
}

func NewSwipeService(db *gorm.DB, profiles *ProfileService) *SwipeService {
	return &SwipeService{db: db, profiles: profiles}
}

// Record upserts a swipe for the given device's profile. The profile is
// created on the fly for unseen device IDs. Re-swiping the same program
// overwrites the direction in place; last write wins, no history.
func (s *SwipeService) Record(deviceID string, programID uuid.UUID, direction string) (*models.Swipe, error) {
	if !models.ValidDirection(direction) {
		return nil, fmt.Errorf("%w: direction must be LEFT or RIGHT", ErrInvalid)
	}

	var program models.Program
	if err := s.db.Select("id").First(&program, "id = ?", programID).Error; err != nil {
		return nil, ErrNotFound
	}

	profile, err := s.profiles.EnsureForDevice(deviceID)
	if err != nil {
		return nil, err
	}

	swipe := models.Swipe{
		ID:        uuid.New(),
		UserID:    profile.ID,
		ProgramID: programID,
		Direction: direction,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "program_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"direction"}),
	}).Create(&swipe).Error
	if err != nil {
		return nil, fmt.Errorf("failed to record swipe: %w", err)
	}

	var stored models.Swipe
	if err := s.db.Where("user_id = ? AND program_id = ?", profile.ID, programID).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}
