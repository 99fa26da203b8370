package model

import "time"

type Plan struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	PriceCents          int64     `json:"price_cents"`
	MaxImages           int       `json:"max_images"`
	ListingDurationDays int       `json:"listing_duration_days"`
	SortOrder           int       `json:"sort_order"`
	CanRenew            bool      `json:"can_renew"`
	FeaturedListing     bool      `json:"featured_listing"`
	PrioritySupport     bool      `json:"priority_support"`
	AnalyticsAccess     bool      `json:"analytics_access"`
	CustomBranding      bool      `json:"custom_branding"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
