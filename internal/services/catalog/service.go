package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
	redisrepo "github.com/ivankudzin/svcmarket/internal/repo/redis"
)

var (
	ErrValidation         = errors.New("invalid catalog input")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrSuggestionNotFound = errors.New("category suggestion not found")
	ErrSuggestionDecided  = errors.New("category suggestion already decided")
)

const categoriesCache = "categories:all"

type Cache interface {
	GetJSON(ctx context.Context, key string, target any) error
	SetJSON(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

type Service struct {
	categories  *pgrepo.CategoryRepo
	suggestions *pgrepo.SuggestionRepo
	cache       Cache
	log         *zap.Logger
}

// CategoryPatch carries the admin-editable category fields; nil means
// "leave as is".
type CategoryPatch struct {
	Name *string
	Slug *string
	Icon *string
}

// categoryDiff returns the column set a patch would change on the given
// category. A field appears in the result only when its trimmed requested
// value differs from the stored one.
func categoryDiff(current model.Category, patch CategoryPatch) map[string]any {
	diff := map[string]any{}
	if patch.Name != nil {
		if name := strings.TrimSpace(*patch.Name); name != current.Name {
			diff["name"] = name
		}
	}
	if patch.Slug != nil {
		if slug := strings.TrimSpace(*patch.Slug); slug != current.Slug {
			diff["slug"] = slug
		}
	}
	if patch.Icon != nil {
		if icon := strings.TrimSpace(*patch.Icon); icon != current.Icon {
			diff["icon"] = icon
		}
	}
	return diff
}

func NewService(categories *pgrepo.CategoryRepo, suggestions *pgrepo.SuggestionRepo, cache Cache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		categories:  categories,
		suggestions: suggestions,
		cache:       cache,
		log:         log,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	if s.categories == nil {
		return nil, fmt.Errorf("catalog service dependencies are not configured")
	}

	if s.cache != nil {
		var cached []model.Category
		err := s.cache.GetJSON(ctx, categoriesCache, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, redisrepo.ErrCacheMiss) {
			s.log.Warn("categories cache read failed", zap.Error(err))
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, categoriesCache, categories); err != nil {
			s.log.Warn("categories cache write failed", zap.Error(err))
		}
	}

	return categories, nil
}

func (s *Service) CreateCategory(ctx context.Context, name, slug, icon string) (model.Category, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return model.Category{}, ErrValidation
	}
	if s.categories == nil {
		return model.Category{}, fmt.Errorf("catalog service dependencies are not configured")
	}

	category, err := s.categories.Create(ctx, model.Category{
		Name: name,
		Slug: slug,
		Icon: strings.TrimSpace(icon),
	})
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}

	s.invalidateCache(ctx)
	return category, nil
}

func (s *Service) PatchCategory(ctx context.Context, categoryID int64, patch CategoryPatch) (model.Category, error) {
	if categoryID <= 0 {
		return model.Category{}, ErrValidation
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Category{}, ErrValidation
	}
	if patch.Slug != nil && strings.TrimSpace(*patch.Slug) == "" {
		return model.Category{}, ErrValidation
	}
	if s.categories == nil {
		return model.Category{}, fmt.Errorf("catalog service dependencies are not configured")
	}

	current, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrCategoryNotFound) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, err
	}

	diff := categoryDiff(current, patch)
	if len(diff) == 0 {
		return current, nil
	}

	updated, err := s.categories.UpdateFields(ctx, categoryID, diff)
	if err != nil {
		if errors.Is(err, pgrepo.ErrCategoryNotFound) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, err
	}

	s.invalidateCache(ctx)
	return updated, nil
}

func (s *Service) DeleteCategory(ctx context.Context, categoryID int64) error {
	if categoryID <= 0 {
		return ErrValidation
	}
	if s.categories == nil {
		return fmt.Errorf("catalog service dependencies are not configured")
	}

	if err := s.categories.Delete(ctx, categoryID); err != nil {
		if errors.Is(err, pgrepo.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *Service) ListSuggestions(ctx context.Context) ([]model.SubmittedCategory, error) {
	if s.suggestions == nil {
		return nil, fmt.Errorf("catalog service dependencies are not configured")
	}
	return s.suggestions.List(ctx)
}

func (s *Service) SubmitSuggestion(ctx context.Context, name string, submitterID *int64) (model.SubmittedCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SubmittedCategory{}, ErrValidation
	}
	if s.suggestions == nil {
		return model.SubmittedCategory{}, fmt.Errorf("catalog service dependencies are not configured")
	}
	return s.suggestions.Create(ctx, name, submitterID)
}

// DecideSuggestion settles a pending suggestion. The decision is terminal:
// a suggestion that already left the pending state cannot be decided again.
// Approval records the verdict only; creating the matching category stays a
// separate, explicit admin step.
func (s *Service) DecideSuggestion(ctx context.Context, suggestionID int64, approve bool) (model.SubmittedCategory, error) {
	if suggestionID <= 0 {
		return model.SubmittedCategory{}, ErrValidation
	}
	if s.suggestions == nil {
		return model.SubmittedCategory{}, fmt.Errorf("catalog service dependencies are not configured")
	}

	status := enums.SuggestionStatusRejected
	if approve {
		status = enums.SuggestionStatusApproved
	}

	decided, err := s.suggestions.Decide(ctx, suggestionID, status)
	if err != nil {
		switch {
		case errors.Is(err, pgrepo.ErrSuggestionNotFound):
			return model.SubmittedCategory{}, ErrSuggestionNotFound
		case errors.Is(err, pgrepo.ErrSuggestionDecided):
			return model.SubmittedCategory{}, ErrSuggestionDecided
		}
		return model.SubmittedCategory{}, err
	}

	return decided, nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, categoriesCache); err != nil {
		s.log.Warn("categories cache invalidation failed", zap.Error(err))
	}
}
