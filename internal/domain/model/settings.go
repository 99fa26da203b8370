package model

import "time"

// Settings is a process-wide singleton row: read on load, overwritten
// wholesale on save.
type Settings struct {
	RequireEmailVerification bool      `json:"require_email_verification"`
	RequirePhoneVerification bool      `json:"require_phone_verification"`
	ModerateNewListings      bool      `json:"moderate_new_listings"`
	ServiceFeePercent        float64   `json:"service_fee_percent"`
	FeaturedFeePercent       float64   `json:"featured_fee_percent"`
	UpdatedAt                time.Time `json:"updated_at"`
}
