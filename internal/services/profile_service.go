package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/filipinasabroad/abroad-backend/internal/config"
	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewProfileService(db *gorm.DB, cfg *config.Config) *ProfileService {
	return &ProfileService{db: db, cfg: cfg}
}

// GetByUserID returns the profile linked to an authenticated user.
func (s *ProfileService) GetByUserID(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, ErrNotFound
	}
	return &profile, nil
}

// EnsureForUser returns the profile for an authenticated user, creating it if
// missing. The admin allow-list is consulted here, so promotion happens at
// profile creation and again on login rather than being scattered per route.
func (s *ProfileService) EnsureForUser(userID uuid.UUID, email, name string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		profile = models.UserProfile{
			ID:                 uuid.New(),
			UserID:             &userID,
			Email:              email,
			Name:               name,
			Role:               models.RoleUser,
			SubscriptionStatus: models.SubscriptionFree,
		}
		if s.cfg.IsAdminEmail(email) {
			profile.Role = models.RoleAdmin
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return &profile, nil
	}

	if s.cfg.IsAdminEmail(email) && !profile.IsAdmin() {
		if err := s.db.Model(&profile).Update("role", models.RoleAdmin).Error; err != nil {
			return nil, err
		}
		profile.Role = models.RoleAdmin
	}
	return &profile, nil
}

// EnsureForDevice returns the profile for an anonymous device ID, creating it
// on first contact. Used by guest swiping.
func (s *ProfileService) EnsureForDevice(deviceID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.Where("device_id = ?", deviceID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.UserProfile{
		ID:                 uuid.New(),
		DeviceID:           &deviceID,
		Role:               models.RoleUser,
		SubscriptionStatus: models.SubscriptionFree,
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return nil, fmt.Errorf("failed to create guest profile: %w", err)
	}
	return &profile, nil
}

// Update applies profile edits, creating the profile first when needed.
func (s *ProfileService) Update(userID uuid.UUID, email, name string, req *dto.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.EnsureForUser(userID, email, name)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.NationalityCode != nil {
		updates["nationality_code"] = strings.ToUpper(strings.TrimSpace(*req.NationalityCode))
	}
	if req.BudgetMinMonthly != nil {
		updates["budget_min_monthly"] = *req.BudgetMinMonthly
	}
	if req.BudgetMaxMonthly != nil {
		updates["budget_max_monthly"] = *req.BudgetMaxMonthly
	}
	if req.TargetCountries != nil {
		countries, err := normalizeCountries(req.TargetCountries)
		if err != nil {
			return nil, err
		}
		updates["target_countries"] = datatypes.NewJSONSlice(countries)
	}
	if req.DegreeLevels != nil {
		levels, err := normalizeDegreeLevels(req.DegreeLevels)
		if err != nil {
			return nil, err
		}
		updates["degree_levels"] = datatypes.NewJSONSlice(levels)
	}
	if req.DesiredStart != nil {
		t, err := time.Parse(time.RFC3339, *req.DesiredStart)
		if err != nil {
			// Accept bare dates too.
			t, err = time.Parse("2006-01-02", *req.DesiredStart)
			if err != nil {
				return nil, fmt.Errorf("%w: desired_start must be an RFC 3339 timestamp or YYYY-MM-DD date", ErrInvalid)
			}
		}
		updates["desired_start"] = t
	}

	if len(updates) > 0 {
		if err := s.db.Model(profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var fresh models.UserProfile
	if err := s.db.First(&fresh, "id = ?", profile.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// AdminList returns profiles with search and pagination plus headline stats.
func (s *ProfileService) AdminList(search string, page, limit int) ([]models.UserProfile, *dto.Pagination, *dto.UserStats, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.UserProfile{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, nil, err
	}

	var profiles []models.UserProfile
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&profiles).Error; err != nil {
		return nil, nil, nil, err
	}

	stats := &dto.UserStats{}
	s.db.Model(&models.UserProfile{}).Count(&stats.TotalUsers)
	s.db.Model(&models.UserProfile{}).Where("role = ?", models.RoleAdmin).Count(&stats.TotalAdmins)
	s.db.Model(&models.UserProfile{}).Where("subscription_status = ?", models.SubscriptionPremium).Count(&stats.TotalPremium)

	return profiles, paginate(total, page, limit), stats, nil
}

// AdminUpdate overrides role or subscription status on any profile.
func (s *ProfileService) AdminUpdate(req *dto.AdminUpdateUserRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.First(&profile, "id = ?", req.UserProfileID).Error; err != nil {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if req.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*req.Role))
		if role != models.RoleUser && role != models.RoleAdmin {
			return nil, fmt.Errorf("%w: role must be USER or ADMIN", ErrInvalid)
		}
		updates["role"] = role
	}
	if req.SubscriptionStatus != nil {
		updates["subscription_status"] = *req.SubscriptionStatus
	}

	if len(updates) > 0 {
		if err := s.db.Model(&profile).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &profile, nil
}

// IncrementCVUses bumps the profile's CV rewrite counter.
func (s *ProfileService) IncrementCVUses(profileID uuid.UUID) error {
	return s.db.Model(&models.UserProfile{}).
		Where("id = ?", profileID).
		Update("cv_uses_count", gorm.Expr("cv_uses_count + 1")).Error
}

func normalizeCountries(codes []string) ([]string, error) {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if len(c) != 2 {
			return nil, fmt.Errorf("%w: invalid country code %q", ErrInvalid, c)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

func normalizeDegreeLevels(levels []string) ([]string, error) {
	seen := make(map[string]struct{}, len(levels))
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		l = strings.ToUpper(strings.TrimSpace(l))
		switch l {
		case models.DegreeBachelors, models.DegreeMasters, models.DegreePHD, models.DegreeDiploma:
		default:
			return nil, fmt.Errorf("%w: invalid degree level %q", ErrInvalid, l)
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out, nil
}

func paginate(total int64, page, limit int) *dto.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.Pagination{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}
