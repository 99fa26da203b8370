package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	"github.com/ivankudzin/svcmarket/internal/domain/rules"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

// DraftPreview reports how far along a draft is. The percentage is purely
// cosmetic; only CanPublish gates the publish call.
type DraftPreview struct {
	CompletionPercent int  `json:"completion_percent"`
	CanPublish        bool `json:"can_publish"`
}

func Preview(draft rules.ListingDraft) DraftPreview {
	return DraftPreview{
		CompletionPercent: rules.CompletionPercent(draft),
		CanPublish:        rules.CanPublish(draft),
	}
}

// Publish turns a finished wizard draft into an active listing. The image
// cap and the listing lifetime come from the owner's plan, falling back to
// the marketplace defaults for users without one.
func (s *Service) Publish(ctx context.Context, owner model.User, draft rules.ListingDraft) (model.Listing, error) {
	if owner.ID <= 0 {
		return model.Listing{}, ErrValidation
	}
	if !rules.CanPublish(draft) {
		return model.Listing{}, ErrCannotPublish
	}
	if s.listings == nil || s.categories == nil {
		return model.Listing{}, fmt.Errorf("listings service dependencies are not configured")
	}

	category, err := s.categories.GetBySlug(ctx, draft.CategorySlug)
	if err != nil {
		if errors.Is(err, pgrepo.ErrCategoryNotFound) {
			return model.Listing{}, ErrCategoryNotFound
		}
		return model.Listing{}, err
	}

	maxImages := s.defaultMaxImages
	durationDays := s.defaultDurationDays
	if owner.PlanID != nil && s.plans != nil {
		plan, err := s.plans.GetByID(ctx, *owner.PlanID)
		if err != nil && !errors.Is(err, pgrepo.ErrPlanNotFound) {
			return model.Listing{}, err
		}
		if err == nil {
			if plan.MaxImages > 0 {
				maxImages = plan.MaxImages
			}
			if plan.ListingDurationDays > 0 {
				durationDays = plan.ListingDurationDays
			}
		}
	}

	if len(draft.Images) > maxImages {
		return model.Listing{}, ErrTooManyImages
	}

	expiresAt := time.Now().UTC().Add(time.Duration(durationDays) * 24 * time.Hour)
	listing := buildListing(owner.ID, category.ID, draft, expiresAt)

	created, err := s.listings.Create(ctx, listing)
	if err != nil {
		return model.Listing{}, fmt.Errorf("create listing: %w", err)
	}

	s.invalidateCache(ctx)
	return created, nil
}

func buildListing(ownerID, categoryID int64, draft rules.ListingDraft, expiresAt time.Time) model.Listing {
	listing := model.Listing{
		OwnerID:      ownerID,
		Title:        draft.ServiceName,
		Description:  draft.Description,
		CategoryID:   categoryID,
		Locations:    draft.Locations,
		ImageKeys:    draft.Images,
		ContactPhone: draft.ContactPhone,
		ContactEmail: draft.ContactEmail,
		Status:       enums.ListingStatusActive,
		ExpiresAt:    &expiresAt,
	}

	switch draft.Pricing.Mode {
	case rules.PricingModeFixed:
		price := draft.Pricing.Rate
		listing.PriceType = enums.PriceTypeFixed
		listing.Price = &price
		listing.PriceUnit = priceUnit(draft.Pricing.Unit)
	case rules.PricingModeList:
		listing.PriceType = enums.PriceTypeList
		listing.PriceOptions = draft.Pricing.Options
	default:
		listing.PriceType = enums.PriceTypeText
		listing.PriceText = "on request"
	}

	return listing
}

func priceUnit(raw string) enums.PriceUnit {
	switch enums.PriceUnit(raw) {
	case enums.PriceUnitHour, enums.PriceUnitJob, enums.PriceUnitConsultation, enums.PriceUnitDay, enums.PriceUnitMonth:
		return enums.PriceUnit(raw)
	default:
		return enums.PriceUnitJob
	}
}
