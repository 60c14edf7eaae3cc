package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationService struct {
	db *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{db: db}
}

// Save upserts an application keyed on (user, program). A fresh save enters
// SAVED unless another status is given; saving an existing pair overwrites
// status and notes instead of creating a duplicate. AppliedAt is stamped only
// on the first transition to APPLIED; COALESCE keeps the original timestamp
// on the conflict path.
func (s *ApplicationService) Save(profileID uuid.UUID, req *dto.SaveApplicationRequest) (*models.Application, error) {
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = models.StatusSaved
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalid, status)
	}

	var program models.Program
	if err := s.db.Select("id").First(&program, "id = ?", req.ProgramID).Error; err != nil {
		return nil, ErrNotFound
	}

	app := models.Application{
		ID:        uuid.New(),
		UserID:    profileID,
		ProgramID: req.ProgramID,
		Status:    status,
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if status == models.StatusApplied {
		now := time.Now()
		app.AppliedAt = &now
	}

	assignments := map[string]interface{}{
		"status":     status,
		"applied_at": gorm.Expr("COALESCE(applications.applied_at, EXCLUDED.applied_at)"),
		"updated_at": time.Now(),
	}
	if req.Notes != nil {
		assignments["notes"] = *req.Notes
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "program_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&app).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}

	return s.byPair(profileID, req.ProgramID)
}

// Update mutates status/notes on an application the caller owns. Ownership
// failures are reported as not-found so non-owners cannot probe for IDs.
func (s *ApplicationService) Update(profileID uuid.UUID, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	var existing models.Application
	if err := s.db.Where("id = ? AND user_id = ?", req.ApplicationID, profileID).First(&existing).Error; err != nil {
		return nil, ErrNotFound
	}
	return s.apply(&existing, req.Status, req.Notes)
}

// AdminUpdate mutates any application without an ownership check.
func (s *ApplicationService) AdminUpdate(req *dto.UpdateApplicationRequest) (*models.Application, error) {
	var existing models.Application
	if err := s.db.First(&existing, "id = ?", req.ApplicationID).Error; err != nil {
		return nil, ErrNotFound
	}
	return s.apply(&existing, req.Status, req.Notes)
}

func (s *ApplicationService) apply(existing *models.Application, status, notes *string) (*models.Application, error) {
	updates := map[string]interface{}{}
	if status != nil {
		st := strings.ToUpper(strings.TrimSpace(*status))
		if !models.ValidStatus(st) {
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalid, st)
		}
		updates["status"] = st
		// Write-once: only the first transition to APPLIED stamps the time.
		if st == models.StatusApplied && existing.AppliedAt == nil {
			updates["applied_at"] = time.Now()
		}
	}
	if notes != nil {
		updates["notes"] = *notes
	}

	if len(updates) > 0 {
		if err := s.db.Model(existing).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var fresh models.Application
	if err := s.db.Preload("Program").Preload("Program.School").First(&fresh, "id = ?", existing.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// Delete hard-deletes an application after re-verifying ownership.
func (s *ApplicationService) Delete(profileID, applicationID uuid.UUID) error {
	var existing models.Application
	if err := s.db.Where("id = ? AND user_id = ?", applicationID, profileID).First(&existing).Error; err != nil {
		return ErrNotFound
	}
	return s.db.Where("id = ? AND user_id = ?", applicationID, profileID).Delete(&models.Application{}).Error
}

// ListForUser returns the caller's applications, newest activity first, with
// program and school joined for display.
func (s *ApplicationService) ListForUser(profileID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := s.db.
		Preload("Program").
		Preload("Program.School").
		Where("user_id = ?", profileID).
		Order("updated_at DESC").
		Find(&apps).Error
	return apps, err
}

// GetOwned fetches one application with all joins, scoped to the owner.
func (s *ApplicationService) GetOwned(profileID, applicationID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("User").
		Preload("Program").
		Preload("Program.School").
		Where("id = ? AND user_id = ?", applicationID, profileID).
		First(&app).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &app, nil
}

// Get fetches one application with all joins, unscoped (admin use).
func (s *ApplicationService) Get(applicationID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("User").
		Preload("Program").
		Preload("Program.School").
		First(&app, "id = ?", applicationID).Error
	if err != nil {
		return nil, ErrNotFound
	}
	return &app, nil
}

// AdminList returns applications across all users with filtering, free-text
// search over joined fields, pagination and per-status counts.
func (s *ApplicationService) AdminList(filter *dto.ApplicationFilter) ([]models.Application, *dto.Pagination, dto.StatusCounts, error) {
	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Application{}).
		Joins("JOIN user_profiles ON user_profiles.id = applications.user_id").
		Joins("JOIN programs ON programs.id = applications.program_id").
		Joins("JOIN schools ON schools.id = programs.school_id")

	status := strings.ToUpper(strings.TrimSpace(filter.Status))
	if status != "" && status != "ALL" {
		if !models.ValidStatus(status) {
			return nil, nil, nil, fmt.Errorf("%w: invalid status %q", ErrInvalid, status)
		}
		query = query.Where("applications.status = ?", status)
	}
	if filter.UserID != nil {
		query = query.Where("applications.user_id = ?", *filter.UserID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where(
			"user_profiles.name ILIKE ? OR user_profiles.email ILIKE ? OR programs.title ILIKE ? OR schools.name ILIKE ?",
			like, like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, nil, err
	}

	var apps []models.Application
	err := query.
		Preload("User").
		Preload("Program").
		Preload("Program.School").
		Order("applications.updated_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, nil, nil, err
	}

	counts, err := s.statusCounts()
	if err != nil {
		return nil, nil, nil, err
	}

	return apps, paginate(total, page, limit), counts, nil
}

func (s *ApplicationService) statusCounts() (dto.StatusCounts, error) {
	type row struct {
		Status string
		Count  int64
	}
	var rows []row
	err := s.db.Model(&models.Application{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(dto.StatusCounts, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (s *ApplicationService) byPair(profileID, programID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("Program").
		Preload("Program.School").
		Where("user_id = ? AND program_id = ?", profileID, programID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}
