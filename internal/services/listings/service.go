package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
	redisrepo "github.com/ivankudzin/svcmarket/internal/repo/redis"
)

var (
	ErrValidation       = errors.New("invalid listing input")
	ErrListingNotFound  = errors.New("listing not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCannotPublish    = errors.New("listing draft is not publishable")
	ErrTooManyImages    = errors.New("image limit exceeded")
)

const signedURLTTL = 5 * time.Minute

// ActiveCacheKey names the cached public catalog. The expiry job
// invalidates it too, so it lives in the exported surface.
const ActiveCacheKey = "listings:active"

type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, target any) error
	SetJSON(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type Service struct {
	listings   *pgrepo.ListingRepo
	categories *pgrepo.CategoryRepo
	plans      *pgrepo.PlanRepo
	cache      Cache
	signer     URLSigner
	log        *zap.Logger

	defaultDurationDays int
	defaultMaxImages    int
}

// ListingView is a listing with its object keys swapped for signed URLs.
type ListingView struct {
	model.Listing
	ImageURLs []string `json:"image_urls"`
}

func NewService(
	listings *pgrepo.ListingRepo,
	categories *pgrepo.CategoryRepo,
	plans *pgrepo.PlanRepo,
	cache Cache,
	signer URLSigner,
	log *zap.Logger,
	defaultDurationDays int,
	defaultMaxImages int,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if defaultDurationDays <= 0 {
		defaultDurationDays = 30
	}
	if defaultMaxImages <= 0 {
		defaultMaxImages = 5
	}
	return &Service{
		listings:            listings,
		categories:          categories,
		plans:               plans,
		cache:               cache,
		signer:              signer,
		log:                 log,
		defaultDurationDays: defaultDurationDays,
		defaultMaxImages:    defaultMaxImages,
	}
}

func (s *Service) List(ctx context.Context) ([]model.Listing, error) {
	if s.listings == nil {
		return nil, fmt.Errorf("listings service dependencies are not configured")
	}
	return s.listings.List(ctx)
}

// ListActive serves the public catalog. The result is cached; a stale or
// unavailable cache falls back to the database.
func (s *Service) ListActive(ctx context.Context) ([]ListingView, error) {
	if s.listings == nil {
		return nil, fmt.Errorf("listings service dependencies are not configured")
	}

	if s.cache != nil {
		var cached []ListingView
		err := s.cache.GetJSON(ctx, ActiveCacheKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redisrepo.ErrCacheMiss) {
			s.log.Warn("active listings cache read failed", zap.Error(err))
		}
	}

	rows, err := s.listings.ListByStatus(ctx, enums.ListingStatusActive)
	if err != nil {
		return nil, err
	}

	views := make([]ListingView, 0, len(rows))
	for _, row := range rows {
		view, err := s.withImageURLs(ctx, row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, ActiveCacheKey, views); err != nil {
			s.log.Warn("active listings cache write failed", zap.Error(err))
		}
	}

	return views, nil
}

// Get returns one listing. countView records a public impression and is
// best-effort: a failed counter update never fails the read.
func (s *Service) Get(ctx context.Context, listingID int64, countView bool) (ListingView, error) {
	if listingID <= 0 {
		return ListingView{}, ErrValidation
	}
	if s.listings == nil {
		return ListingView{}, fmt.Errorf("listings service dependencies are not configured")
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return ListingView{}, ErrListingNotFound
		}
		return ListingView{}, err
	}

	if countView {
		if err := s.listings.IncrementViewCount(ctx, listingID); err != nil {
			s.log.Warn("view count increment failed", zap.Int64("listing_id", listingID), zap.Error(err))
		} else {
			listing.ViewCount++
		}
	}

	return s.withImageURLs(ctx, listing)
}

func (s *Service) Patch(ctx context.Context, listingID int64, patch Patch) (model.Listing, error) {
	if listingID <= 0 {
		return model.Listing{}, ErrValidation
	}
	if err := patch.validate(); err != nil {
		return model.Listing{}, err
	}
	if s.listings == nil {
		return model.Listing{}, fmt.Errorf("listings service dependencies are not configured")
	}

	current, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return model.Listing{}, ErrListingNotFound
		}
		return model.Listing{}, err
	}

	diff := Diff(current, patch)
	if len(diff) == 0 {
		return current, nil
	}

	updated, err := s.listings.UpdateFields(ctx, listingID, diff)
	if err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return model.Listing{}, ErrListingNotFound
		}
		return model.Listing{}, err
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, listingID int64) error {
	if listingID <= 0 {
		return ErrValidation
	}
	if s.listings == nil {
		return fmt.Errorf("listings service dependencies are not configured")
	}

	if err := s.listings.Delete(ctx, listingID); err != nil {
		if errors.Is(err, pgrepo.ErrListingNotFound) {
			return ErrListingNotFound
		}
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ActiveCacheKey); err != nil {
		s.log.Warn("active listings cache invalidation failed", zap.Error(err))
	}
}

func (s *Service) withImageURLs(ctx context.Context, listing model.Listing) (ListingView, error) {
	view := ListingView{Listing: listing}
	if s.signer == nil || len(listing.ImageKeys) == 0 {
		return view, nil
	}

	urls := make([]string, 0, len(listing.ImageKeys))
	for _, key := range listing.ImageKeys {
		url, err := s.signer.PresignGet(ctx, key, signedURLTTL)
		if err != nil {
			return ListingView{}, fmt.Errorf("sign listing image: %w", err)
		}
		urls = append(urls, url)
	}
	view.ImageURLs = urls
	return view, nil
}
