package dto

import "github.com/google/uuid"

type SaveApplicationRequest struct {
	ProgramID uuid.UUID `json:"program_id"`
	Status    string    `json:"status"`
	Notes     *string   `json:"notes"`
}

type UpdateApplicationRequest struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Status        *string   `json:"status"`
	Notes         *string   `json:"notes"`
}

// ApplicationFilter is the admin listing filter. Status "ALL" (or empty)
// matches every status; Search is OR-matched across user name/email, program
// title and school name.
type ApplicationFilter struct {
	Status string
	UserID *uuid.UUID
	Search string
	Page   int
	Limit  int
}

// StatusCounts maps application status to row count for the admin dashboard.
type StatusCounts map[string]int64

type SwipeRequest struct {
	ProgramID uuid.UUID `json:"program_id"`
	Direction string    `json:"direction"`
}

type ReferralRequest struct {
	AccommodationID uuid.UUID `json:"accommodation_id"`
}
