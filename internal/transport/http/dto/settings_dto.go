package dto

import (
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	settingsvc "github.com/ivankudzin/svcmarket/internal/services/settings"
)

type SettingsResponse struct {
	Settings model.Settings `json:"settings"`
}

// SettingsSaveRequest is the whole settings form: the singleton is
// overwritten wholesale, partial saves do not exist.
type SettingsSaveRequest struct {
	RequireEmailVerification bool    `json:"require_email_verification"`
	RequirePhoneVerification bool    `json:"require_phone_verification"`
	ModerateNewListings      bool    `json:"moderate_new_listings"`
	ServiceFeePercent        float64 `json:"service_fee_percent"`
	FeaturedFeePercent       float64 `json:"featured_fee_percent"`
}

type APIKeySaveRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// APIKeysResponse lists stored credential names only. Values are write-only
// and never echoed back.
type APIKeysResponse struct {
	Names []string `json:"names"`
}

type EnvStatusResponse struct {
	Vars []settingsvc.EnvVarStatus `json:"vars"`
}
