package model

import (
	"time"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
)

type PriceOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Listing struct {
	ID           int64               `json:"id"`
	OwnerID      int64               `json:"owner_id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	CategoryID   int64               `json:"category_id"`
	PriceType    enums.PriceType     `json:"price_type"`
	Price        *int64              `json:"price"`
	PriceText    string              `json:"price_text"`
	PriceUnit    enums.PriceUnit     `json:"price_unit"`
	PriceOptions []PriceOption       `json:"price_options"`
	Locations    []string            `json:"locations"`
	Tags         []string            `json:"tags"`
	Hashtags     []string            `json:"hashtags"`
	ImageKeys    []string            `json:"image_keys"`
	ContactPhone string              `json:"contact_phone"`
	ContactEmail string              `json:"contact_email"`
	Status       enums.ListingStatus `json:"status"`
	ViewCount    int64               `json:"view_count"`
	ExpiresAt    *time.Time          `json:"expires_at"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
