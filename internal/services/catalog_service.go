package services

import (
	"strings"

	"github.com/filipinasabroad/abroad-backend/internal/dto"
	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService serves the reference data: programs, accommodations and visa
// requirements, plus booking referrals against accommodations. Listing is a
// plain filtered fetch; there is deliberately no ranking or matching logic.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListPrograms returns programs with optional country/degree-level filters.
func (s *CatalogService) ListPrograms(country, degreeLevel string, page, limit int) ([]models.Program, *dto.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.Model(&models.Program{})
	if country != "" {
		query = query.Where("country_code = ?", strings.ToUpper(country))
	}
	if degreeLevel != "" {
		query = query.Where("degree_level = ?", strings.ToUpper(degreeLevel))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var programs []models.Program
	err := query.
		Preload("School").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&programs).Error
	if err != nil {
		return nil, nil, err
	}

	return programs, paginate(total, page, limit), nil
}

// ListAccommodations returns up to 10 accommodations for a city/country,
// cheapest first.
func (s *CatalogService) ListAccommodations(city, country string) ([]models.Accommodation, error) {
	query := s.db.Model(&models.Accommodation{})
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if country != "" {
		query = query.Where("country_code = ?", strings.ToUpper(country))
	}

	var items []models.Accommodation
	err := query.Order("monthly_rent ASC").Limit(10).Find(&items).Error
	return items, err
}

// ListVisaRequirements returns all rows for a nationality, ordered by
// destination.
func (s *CatalogService) ListVisaRequirements(nationality string) ([]models.VisaRequirement, error) {
	var items []models.VisaRequirement
	err := s.db.
		Where("nationality_code = ?", strings.ToUpper(nationality)).
		Order("destination_country_code ASC").
		Find(&items).Error
	return items, err
}

// CreateReferral records a click-through to an accommodation provider. The
// referral URL is taken from the provider; rows are never deleted.
func (s *CatalogService) CreateReferral(profileID, accommodationID uuid.UUID) (*models.BookingReferral, error) {
	var acc models.Accommodation
	if err := s.db.First(&acc, "id = ?", accommodationID).Error; err != nil {
		return nil, ErrNotFound
	}

	referral := models.BookingReferral{
		ID:              uuid.New(),
		UserID:          profileID,
		AccommodationID: accommodationID,
		Status:          models.ReferralClicked,
		ReferralURL:     acc.ProviderURL,
	}
	if err := s.db.Create(&referral).Error; err != nil {
		return nil, err
	}
	referral.Accommodation = acc
	return &referral, nil
}

// ListReferrals returns the caller's referrals, newest first.
func (s *CatalogService) ListReferrals(profileID uuid.UUID) ([]models.BookingReferral, error) {
	var items []models.BookingReferral
	err := s.db.
		Preload("Accommodation").
		Where("user_id = ?", profileID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
