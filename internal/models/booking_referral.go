package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking referral statuses.
const (
	ReferralClicked   = "CLICKED"
	ReferralConverted = "CONVERTED"
)

// BookingReferral tracks a click-through to an accommodation provider.
// Created on referral action, never deleted in normal flow.
type BookingReferral struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	AccommodationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"accommodation_id"`
	Status          string        `gorm:"size:20;not null;default:'CLICKED'" json:"status"`
	ReferralURL     string        `gorm:"size:500;not null" json:"referral_url"`
	CreatedAt       time.Time     `json:"created_at"`
	User            UserProfile   `gorm:"foreignKey:UserID" json:"-"`
	Accommodation   Accommodation `gorm:"foreignKey:AccommodationID" json:"accommodation,omitempty"`
}
