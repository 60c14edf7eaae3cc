package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Roles on UserProfile.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Subscription states consulted by the download paywall.
const (
	SubscriptionFree              = "FREE"
	SubscriptionPremium           = "PREMIUM"
	SubscriptionDownloadPurchased = "DOWNLOAD_PURCHASED"
)

// Degree levels for profiles and programs.
const (
	DegreeBachelors = "BACHELORS"
	DegreeMasters   = "MASTERS"
	DegreePHD       = "PHD"
	DegreeDiploma   = "DIPLOMA"
)

// UserProfile is the identity anchor for swipes, applications and referrals.
// Exactly one of UserID or DeviceID identifies a profile in practice: DeviceID
// for anonymous sessions, UserID once the user has signed in. The schema does
// not enforce exclusivity and no merge path exists for a guest who later signs
// in.
type UserProfile struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             *uuid.UUID                  `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	DeviceID           *string                     `gorm:"size:255;uniqueIndex" json:"device_id,omitempty"`
	Name               string                      `gorm:"size:255" json:"name"`
	Email              string                      `gorm:"size:255;index" json:"email"`
	NationalityCode    string                      `gorm:"size:2" json:"nationality_code"`
	BudgetMinMonthly   *int                        `json:"budget_min_monthly"`
	BudgetMaxMonthly   *int                        `json:"budget_max_monthly"`
	TargetCountries    datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"target_countries"`
	DegreeLevels       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"degree_levels"`
	DesiredStart       *time.Time                  `json:"desired_start"`
	Role               string                      `gorm:"size:20;not null;default:'USER'" json:"role"`
	SubscriptionStatus string                      `gorm:"size:50;not null;default:'FREE'" json:"subscription_status"`
	CVUsesCount        int                         `gorm:"default:0" json:"cv_uses_count"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
	User               *User                       `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdmin reports whether the profile holds the ADMIN role.
func (p *UserProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
