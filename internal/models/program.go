package models

import (
	"time"

	"github.com/google/uuid"
)

// Program belongs to exactly one School. Tuition is in currency minor units.
type Program struct {
	ID                  uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SchoolID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"school_id"`
	Title               string     `gorm:"not null;size:255;index" json:"title"`
	DegreeLevel         string     `gorm:"not null;size:20;index" json:"degree_level"`
	DurationMonths      *int       `json:"duration_months"`
	TuitionAnnual       *int       `json:"tuition_annual"`
	Currency            string     `gorm:"size:3;not null;default:'EUR'" json:"currency"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
	Language            string     `gorm:"size:50" json:"language,omitempty"`
	City                string     `gorm:"not null;size:100;index" json:"city"`
	CountryCode         string     `gorm:"not null;size:2;index" json:"country_code"`
	Description         string     `gorm:"type:text" json:"description,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	School              School     `gorm:"foreignKey:SchoolID" json:"school"`
}
