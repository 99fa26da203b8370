package dto

import "github.com/ivankudzin/svcmarket/internal/domain/model"

type PlansResponse struct {
	Plans []model.Plan `json:"plans"`
}

type PlanResponse struct {
	Plan model.Plan `json:"plan"`
}

type PlanCreateRequest struct {
	Name                string `json:"name"`
	PriceCents          int64  `json:"price_cents"`
	MaxImages           int    `json:"max_images"`
	ListingDurationDays int    `json:"listing_duration_days"`
	SortOrder           int    `json:"sort_order"`
	CanRenew            bool   `json:"can_renew"`
	FeaturedListing     bool   `json:"featured_listing"`
	PrioritySupport     bool   `json:"priority_support"`
	AnalyticsAccess     bool   `json:"analytics_access"`
	CustomBranding      bool   `json:"custom_branding"`
	IsActive            bool   `json:"is_active"`
}

type PlanPatchRequest struct {
	Name                *string `json:"name,omitempty"`
	PriceCents          *int64  `json:"price_cents,omitempty"`
	MaxImages           *int    `json:"max_images,omitempty"`
	ListingDurationDays *int    `json:"listing_duration_days,omitempty"`
	SortOrder           *int    `json:"sort_order,omitempty"`
	CanRenew            *bool   `json:"can_renew,omitempty"`
	FeaturedListing     *bool   `json:"featured_listing,omitempty"`
	PrioritySupport     *bool   `json:"priority_support,omitempty"`
	AnalyticsAccess     *bool   `json:"analytics_access,omitempty"`
	CustomBranding      *bool   `json:"custom_branding,omitempty"`
	IsActive            *bool   `json:"is_active,omitempty"`
}
