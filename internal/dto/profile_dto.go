package dto

import "github.com/google/uuid"

// UpdateProfileRequest carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileRequest struct {
	NationalityCode  *string  `json:"nationality_code"`
	BudgetMinMonthly *int     `json:"budget_min_monthly"`
	BudgetMaxMonthly *int     `json:"budget_max_monthly"`
	TargetCountries  []string `json:"target_countries"`
	DegreeLevels     []string `json:"degree_levels"`
	DesiredStart     *string  `json:"desired_start"` // RFC 3339 date
}

// AdminUpdateUserRequest lets an admin override role or subscription state.
type AdminUpdateUserRequest struct {
	UserProfileID      uuid.UUID `json:"user_profile_id"`
	Role               *string   `json:"role"`
	SubscriptionStatus *string   `json:"subscription_status"`
}

type UserStats struct {
	TotalUsers   int64 `json:"total_users"`
	TotalAdmins  int64 `json:"total_admins"`
	TotalPremium int64 `json:"total_premium"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
