// Package constants defines shared table names and context keys.
package constants

// Database table names.
const (
	TableUsers              = "users"
	TableProducts           = "products"
	TableProductFeatures    = "product_features"
	TableSubscriptions      = "subscriptions"
	TableSubscriptionEvents = "subscription_events"
)

// Gin context keys set by the auth middleware.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeySubjectID = "subject_id"
	ContextKeyUser      = "current_user"
)
