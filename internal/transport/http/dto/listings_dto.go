package dto

import (
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	listingsvc "github.com/ivankudzin/svcmarket/internal/services/listings"
)

type ListingsResponse struct {
	Listings []model.Listing `json:"listings"`
}

type ListingViewsResponse struct {
	Listings []listingsvc.ListingView `json:"listings"`
}

type ListingResponse struct {
	Listing model.Listing `json:"listing"`
}

type ListingViewResponse struct {
	Listing listingsvc.ListingView `json:"listing"`
}

// ListingPatchRequest mirrors the admin edit form. Array fields arrive as
// comma-joined strings and are split server-side; omitted fields stay
// untouched.
type ListingPatchRequest struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	PriceType    *string `json:"price_type,omitempty"`
	Price        *int64  `json:"price,omitempty"`
	PriceText    *string `json:"price_text,omitempty"`
	PriceUnit    *string `json:"price_unit,omitempty"`
	Locations    *string `json:"locations,omitempty"`
	Tags         *string `json:"tags,omitempty"`
	Hashtags     *string `json:"hashtags,omitempty"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	ContactEmail *string `json:"contact_email,omitempty"`
	Status       *string `json:"status,omitempty"`
}

type DraftPricingPayload struct {
	Mode    string              `json:"mode"`
	Rate    int64               `json:"rate,omitempty"`
	Unit    string              `json:"unit,omitempty"`
	Options []model.PriceOption `json:"options,omitempty"`
}

// ListingDraftRequest is the accumulated wizard payload submitted in one
// shot at the end of the create-listing flow.
type ListingDraftRequest struct {
	CategorySlug string              `json:"category_slug"`
	ServiceName  string              `json:"service_name"`
	Description  string              `json:"description"`
	Images       []string            `json:"images"`
	ContactPhone string              `json:"contact_phone"`
	ContactEmail string              `json:"contact_email"`
	Credentials  string              `json:"credentials"`
	Locations    string              `json:"locations"`
	Pricing      DraftPricingPayload `json:"pricing"`
}

type DraftPreviewResponse struct {
	CompletionPercent int  `json:"completion_percent"`
	CanPublish        bool `json:"can_publish"`
}
