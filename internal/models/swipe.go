package models

import (
	"time"

	"github.com/google/uuid"
)

// Swipe directions.
const (
	SwipeLeft  = "LEFT"
	SwipeRight = "RIGHT"
)

// ValidDirection reports whether d is exactly LEFT or RIGHT.
func ValidDirection(d string) bool {
	return d == SwipeLeft || d == SwipeRight
}

// Swipe records a one-shot directional preference per (user, program) pair.
// Re-swiping overwrites Direction in place; no history is kept.
type Swipe struct {
	ID        uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_swipes_user_program" json:"user_id"`
	ProgramID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_swipes_user_program" json:"program_id"`
	Direction string      `gorm:"size:5;not null" json:"direction"`
	CreatedAt time.Time   `json:"created_at"`
	User      UserProfile `gorm:"foreignKey:UserID" json:"-"`
	Program   Program     `gorm:"foreignKey:ProgramID" json:"-"`
}
