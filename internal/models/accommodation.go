package models

import (
	"time"

	"github.com/google/uuid"
)

// Accommodation types.
const (
	AccommodationApartment     = "APARTMENT"
	AccommodationSharedPrivate = "SHARED_PRIVATE"
	AccommodationSharedRoom    = "SHARED_ROOM"
	AccommodationStudio        = "STUDIO"
	AccommodationDorm          = "DORM"
)

// Accommodation is reference data filtered by city/country for display. No
// ownership relation to users; referrals link through BookingReferral.
type Accommodation struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProviderName string    `gorm:"not null;size:255" json:"provider_name"`
	ProviderURL  string    `gorm:"not null;size:500" json:"provider_url"`
	Type         string    `gorm:"not null;size:30" json:"type"`
	MonthlyRent  int       `gorm:"not null" json:"monthly_rent"`
	Currency     string    `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	City         string    `gorm:"not null;size:100;index" json:"city"`
	CountryCode  string    `gorm:"not null;size:2;index" json:"country_code"`
	Description  string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
