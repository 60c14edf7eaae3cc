package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses. Transitions are deliberately unrestricted: any owner
// or admin may set any of the five values in any order.
const (
	StatusSaved     = "SAVED"
	StatusApplied   = "APPLIED"
	StatusAccepted  = "ACCEPTED"
	StatusRejected  = "REJECTED"
	StatusWithdrawn = "WITHDRAWN"
)

// ValidStatus reports whether s is one of the five application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusSaved, StatusApplied, StatusAccepted, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// Application is the durable record of a user's progress toward a Program.
// At most one row exists per (user, program); saves upsert on that key.
// AppliedAt is write-once: stamped the first time status becomes APPLIED and
// never cleared, even when the status later moves away from APPLIED.
type Application struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_program" json:"user_id"`
	ProgramID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_program" json:"program_id"`
	Status    string      `gorm:"size:20;not null;default:'SAVED';index" json:"status"`
	Notes     string      `gorm:"type:text" json:"notes,omitempty"`
	AppliedAt *time.Time  `json:"applied_at"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `gorm:"index" json:"updated_at"`
	User      UserProfile `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Program   Program     `gorm:"foreignKey:ProgramID" json:"program,omitempty"`
}
