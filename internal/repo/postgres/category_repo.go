package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, slug, icon, created_at, updated_at
FROM categories
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var category model.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.Icon, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, categoryID int64) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	if categoryID <= 0 {
		return model.Category{}, fmt.Errorf("invalid category id")
	}

	var category model.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, slug, icon, created_at, updated_at
FROM categories
WHERE id = $1
`, categoryID).Scan(&category.ID, &category.Name, &category.Slug, &category.Icon, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) GetBySlug(ctx context.Context, slug string) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	clean := strings.TrimSpace(slug)
	if clean == "" {
		return model.Category{}, fmt.Errorf("invalid category slug")
	}

	var category model.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, slug, icon, created_at, updated_at
FROM categories
WHERE slug = $1
`, clean).Scan(&category.ID, &category.Name, &category.Slug, &category.Icon, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("get category by slug: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category model.Category) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(category.Name) == "" || strings.TrimSpace(category.Slug) == "" {
		return model.Category{}, fmt.Errorf("invalid category payload")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO categories (name, slug, icon, created_at, updated_at)
VALUES ($1, $2, $3, NOW(), NOW())
RETURNING id, created_at, updated_at
`, strings.TrimSpace(category.Name), strings.TrimSpace(category.Slug), category.Icon).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) UpdateFields(ctx context.Context, categoryID int64, diff map[string]any) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}
	if categoryID <= 0 {
		return model.Category{}, fmt.Errorf("invalid category id")
	}

	allowed := map[string]bool{"name": true, "slug": true, "icon": true}
	if len(diff) == 0 {
		var category model.Category
		err := r.pool.QueryRow(ctx, `
SELECT id, name, slug, icon, created_at, updated_at
FROM categories
WHERE id = $1
`, categoryID).Scan(&category.ID, &category.Name, &category.Slug, &category.Icon, &category.CreatedAt, &category.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.Category{}, ErrCategoryNotFound
			}
			return model.Category{}, fmt.Errorf("get category: %w", err)
		}
		return category, nil
	}

	assignments := make([]string, 0, len(diff))
	args := make([]any, 0, len(diff)+1)
	args = append(args, categoryID)
	for column, value := range diff {
		if !allowed[column] {
			return model.Category{}, fmt.Errorf("column %q is not patchable", column)
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	var category model.Category
	query := fmt.Sprintf(`
UPDATE categories
SET %s, updated_at = NOW()
WHERE id = $1
RETURNING id, name, slug, icon, created_at, updated_at
`, strings.Join(assignments, ", "))
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&category.ID, &category.Name, &category.Slug, &category.Icon, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("update category: %w", err)
	}

	return category, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, categoryID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if categoryID <= 0 {
		return fmt.Errorf("invalid category id")
	}

	res, err := r.pool.Exec(ctx, `
DELETE FROM categories
WHERE id = $1
`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
