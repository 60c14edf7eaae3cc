package models

import (
	"time"

	"github.com/google/uuid"
)

// School is immutable reference data, seeded by the import CLI. Uniqueness on
// name+country+city is enforced by the importer, not the schema.
type School struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:255;index" json:"name"`
	CountryCode string    `gorm:"not null;size:2;index" json:"country_code"`
	City        string    `gorm:"not null;size:100" json:"city"`
	Website     string    `gorm:"size:500" json:"website,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
