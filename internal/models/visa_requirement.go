package models

import (
	"time"

	"github.com/google/uuid"
)

// VisaRequirement holds at most one row per (nationality, destination) pair;
// the composite unique index is the upsert key used by the importer.
type VisaRequirement struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	NationalityCode        string    `gorm:"size:2;not null;uniqueIndex:idx_visa_nationality_destination" json:"nationality_code"`
	DestinationCountryCode string    `gorm:"size:2;not null;uniqueIndex:idx_visa_nationality_destination" json:"destination_country_code"`
	Summary                string    `gorm:"type:text;not null" json:"summary"`
	RequiredDocuments      string    `gorm:"type:text" json:"required_documents,omitempty"`
	OfficialURL            string    `gorm:"size:500" json:"official_url,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
