package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("invalid plan input")
	ErrPlanNotFound = errors.New("plan not found")
)

type Service struct {
	plans *pgrepo.PlanRepo
}

// Patch carries the admin-editable plan fields; nil pointers mean "leave
// as is".
type Patch struct {
	Name                *string
	PriceCents          *int64
	MaxImages           *int
	ListingDurationDays *int
	SortOrder           *int
	CanRenew            *bool
	FeaturedListing     *bool
	PrioritySupport     *bool
	AnalyticsAccess     *bool
	CustomBranding      *bool
	IsActive            *bool
}

func NewService(plans *pgrepo.PlanRepo) *Service {
	return &Service{plans: plans}
}

func (s *Service) List(ctx context.Context) ([]model.Plan, error) {
	if s.plans == nil {
		return nil, fmt.Errorf("plans service dependencies are not configured")
	}
	return s.plans.List(ctx)
}

// ListActive serves the public pricing page: inactive plans stay hidden.
func (s *Service) ListActive(ctx context.Context) ([]model.Plan, error) {
	if s.plans == nil {
		return nil, fmt.Errorf("plans service dependencies are not configured")
	}
	return s.plans.ListActive(ctx)
}

func (s *Service) Get(ctx context.Context, planID int64) (model.Plan, error) {
	if planID <= 0 {
		return model.Plan{}, ErrValidation
	}
	if s.plans == nil {
		return model.Plan{}, fmt.Errorf("plans service dependencies are not configured")
	}

	plan, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPlanNotFound) {
			return model.Plan{}, ErrPlanNotFound
		}
		return model.Plan{}, err
	}
	return plan, nil
}

func (s *Service) Create(ctx context.Context, plan model.Plan) (model.Plan, error) {
	plan.Name = strings.TrimSpace(plan.Name)
	if plan.Name == "" || plan.PriceCents < 0 || plan.MaxImages < 0 || plan.ListingDurationDays < 0 {
		return model.Plan{}, ErrValidation
	}
	if s.plans == nil {
		return model.Plan{}, fmt.Errorf("plans service dependencies are not configured")
	}

	created, err := s.plans.Create(ctx, plan)
	if err != nil {
		return model.Plan{}, fmt.Errorf("create plan: %w", err)
	}
	return created, nil
}

// Patch loads the current plan, diffs the requested fields against it and
// updates only columns whose value actually changed. A patch that changes
// nothing is a plain read.
func (s *Service) Patch(ctx context.Context, planID int64, patch Patch) (model.Plan, error) {
	if planID <= 0 {
		return model.Plan{}, ErrValidation
	}
	if err := patch.validate(); err != nil {
		return model.Plan{}, err
	}
	if s.plans == nil {
		return model.Plan{}, fmt.Errorf("plans service dependencies are not configured")
	}

	current, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPlanNotFound) {
			return model.Plan{}, ErrPlanNotFound
		}
		return model.Plan{}, err
	}

	diff := Diff(current, patch)
	if len(diff) == 0 {
		return current, nil
	}

	updated, err := s.plans.UpdateFields(ctx, planID, diff)
	if err != nil {
		if errors.Is(err, pgrepo.ErrPlanNotFound) {
			return model.Plan{}, ErrPlanNotFound
		}
		return model.Plan{}, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, planID int64) error {
	if planID <= 0 {
		return ErrValidation
	}
	if s.plans == nil {
		return fmt.Errorf("plans service dependencies are not configured")
	}

	if err := s.plans.Delete(ctx, planID); err != nil {
		if errors.Is(err, pgrepo.ErrPlanNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

func (p Patch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrValidation
	}
	if p.PriceCents != nil && *p.PriceCents < 0 {
		return ErrValidation
	}
	if p.MaxImages != nil && *p.MaxImages < 0 {
		return ErrValidation
	}
	if p.ListingDurationDays != nil && *p.ListingDurationDays < 0 {
		return ErrValidation
	}
	return nil
}

// Diff returns the column set a patch would change on the given plan.
func Diff(current model.Plan, patch Patch) map[string]any {
	diff := map[string]any{}

	if patch.Name != nil && *patch.Name != current.Name {
		diff["name"] = *patch.Name
	}
	if patch.PriceCents != nil && *patch.PriceCents != current.PriceCents {
		diff["price_cents"] = *patch.PriceCents
	}
	if patch.MaxImages != nil && *patch.MaxImages != current.MaxImages {
		diff["max_images"] = *patch.MaxImages
	}
	if patch.ListingDurationDays != nil && *patch.ListingDurationDays != current.ListingDurationDays {
		diff["listing_duration_days"] = *patch.ListingDurationDays
	}
	if patch.SortOrder != nil && *patch.SortOrder != current.SortOrder {
		diff["sort_order"] = *patch.SortOrder
	}
	if patch.CanRenew != nil && *patch.CanRenew != current.CanRenew {
		diff["can_renew"] = *patch.CanRenew
	}
	if patch.FeaturedListing != nil && *patch.FeaturedListing != current.FeaturedListing {
		diff["featured_listing"] = *patch.FeaturedListing
	}
	if patch.PrioritySupport != nil && *patch.PrioritySupport != current.PrioritySupport {
		diff["priority_support"] = *patch.PrioritySupport
	}
	if patch.AnalyticsAccess != nil && *patch.AnalyticsAccess != current.AnalyticsAccess {
		diff["analytics_access"] = *patch.AnalyticsAccess
	}
	if patch.CustomBranding != nil && *patch.CustomBranding != current.CustomBranding {
		diff["custom_branding"] = *patch.CustomBranding
	}
	if patch.IsActive != nil && *patch.IsActive != current.IsActive {
		diff["is_active"] = *patch.IsActive
	}

	return diff
}
