package services

import (
	"testing"

	"github.com/filipinasabroad/abroad-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHasDownloadAccess(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{models.SubscriptionPremium, true},
		{models.SubscriptionDownloadPurchased, true},
		{models.SubscriptionFree, false},
		{"", false},
		{"premium", false}, // case matters, stored values are upper-case
		{"TRIAL", false},
	}

	for _, tc := range cases {
		profile := &models.UserProfile{SubscriptionStatus: tc.status}
		assert.Equal(t, tc.want, HasDownloadAccess(profile), "status %q", tc.status)
	}
}
