package services

import "github.com/filipinasabroad/abroad-backend/internal/models"

// HasDownloadAccess is the paywall gate for the document export. True iff the
// subscription status is exactly PREMIUM or DOWNLOAD_PURCHASED; FREE, empty
// and unknown values are all denied. Admin export bypasses this entirely.
func HasDownloadAccess(profile *models.UserProfile) bool {
	return profile.SubscriptionStatus == models.SubscriptionPremium ||
		profile.SubscriptionStatus == models.SubscriptionDownloadPurchased
}
