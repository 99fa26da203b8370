package listings

import (
	"testing"
	"time"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	"github.com/ivankudzin/svcmarket/internal/domain/rules"
)

func publishableDraft() rules.ListingDraft {
	return rules.ListingDraft{
		CategorySlug: "plumbing",
		ServiceName:  "Pipe repair",
		Description:  "Fast emergency pipe repair",
		Images:       []string{"listings/1/a.jpg"},
		ContactPhone: "+371 20000000",
		Locations:    []string{"Riga"},
		Pricing:      rules.DraftPricing{Mode: rules.PricingModeFixed, Rate: 4500, Unit: "hour"},
	}
}

func TestBuildListingFixedPricing(t *testing.T) {
	expiresAt := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	listing := buildListing(7, 3, publishableDraft(), expiresAt)

	if listing.OwnerID != 7 || listing.CategoryID != 3 {
		t.Fatalf("unexpected ids: %+v", listing)
	}
	if listing.Status != enums.ListingStatusActive {
		t.Fatalf("expected active status, got %s", listing.Status)
	}
	if listing.PriceType != enums.PriceTypeFixed {
		t.Fatalf("expected fixed price type, got %s", listing.PriceType)
	}
	if listing.Price == nil || *listing.Price != 4500 {
		t.Fatalf("unexpected price: %v", listing.Price)
	}
	if listing.PriceUnit != enums.PriceUnitHour {
		t.Fatalf("unexpected price unit: %s", listing.PriceUnit)
	}
	if listing.ExpiresAt == nil || !listing.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("unexpected expiry: %v", listing.ExpiresAt)
	}
}

func TestBuildListingListPricing(t *testing.T) {
	draft := publishableDraft()
	draft.Pricing = rules.DraftPricing{
		Mode: rules.PricingModeList,
		Options: []model.PriceOption{
			{Name: "Inspection", Price: 2000},
			{Name: "Full repair", Price: 9000},
		},
	}

	listing := buildListing(7, 3, draft, time.Now())

	if listing.PriceType != enums.PriceTypeList {
		t.Fatalf("expected list price type, got %s", listing.PriceType)
	}
	if len(listing.PriceOptions) != 2 {
		t.Fatalf("expected 2 price options, got %d", len(listing.PriceOptions))
	}
	if listing.Price != nil {
		t.Fatalf("list pricing must not carry a single price")
	}
}

func TestBuildListingRequestPricing(t *testing.T) {
	draft := publishableDraft()
	draft.Pricing = rules.DraftPricing{Mode: rules.PricingModeRequest}

	listing := buildListing(7, 3, draft, time.Now())

	if listing.PriceType != enums.PriceTypeText {
		t.Fatalf("expected text price type, got %s", listing.PriceType)
	}
	if listing.PriceText == "" {
		t.Fatalf("expected a price text placeholder")
	}
}

func TestBuildListingUnknownUnitFallsBack(t *testing.T) {
	draft := publishableDraft()
	draft.Pricing.Unit = "fortnight"

	listing := buildListing(7, 3, draft, time.Now())

	if listing.PriceUnit != enums.PriceUnitJob {
		t.Fatalf("expected fallback unit, got %s", listing.PriceUnit)
	}
}

func TestPreviewTracksDraftProgress(t *testing.T) {
	draft := rules.ListingDraft{}

	empty := Preview(draft)
	if empty.CompletionPercent != 0 || empty.CanPublish {
		t.Fatalf("unexpected preview for empty draft: %+v", empty)
	}

	full := Preview(publishableDraft())
	if !full.CanPublish {
		t.Fatalf("expected publishable draft")
	}
	if full.CompletionPercent <= empty.CompletionPercent {
		t.Fatalf("completion must grow as fields fill in")
	}
}
