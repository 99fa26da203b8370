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

var ErrPlanNotFound = errors.New("plan not found")

type PlanRepo struct {
	pool *pgxpool.Pool
}

func NewPlanRepo(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

const planColumns = `id, name, price_cents, max_images, listing_duration_days, sort_order,
can_renew, featured_listing, priority_support, analytics_access, custom_branding, is_active,
created_at, updated_at`

var patchablePlanColumns = map[string]bool{
	"name":                  true,
	"price_cents":           true,
	"max_images":            true,
	"listing_duration_days": true,
	"sort_order":            true,
	"can_renew":             true,
	"featured_listing":      true,
	"priority_support":      true,
	"analytics_access":      true,
	"custom_branding":       true,
	"is_active":             true,
}

func (r *PlanRepo) List(ctx context.Context) ([]model.Plan, error) {
	return r.list(ctx, "")
}

// ListActive backs the public plans endpoint.
func (r *PlanRepo) ListActive(ctx context.Context) ([]model.Plan, error) {
	return r.list(ctx, "WHERE is_active")
}

func (r *PlanRepo) list(ctx context.Context, where string) ([]model.Plan, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %s
FROM plans
%s
ORDER BY sort_order ASC, id ASC
`, planColumns, where))
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	plans := make([]model.Plan, 0)
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}

	return plans, nil
}

func (r *PlanRepo) GetByID(ctx context.Context, planID int64) (model.Plan, error) {
	if r.pool == nil {
		return model.Plan{}, fmt.Errorf("postgres pool is nil")
	}
	if planID <= 0 {
		return model.Plan{}, fmt.Errorf("invalid plan id")
	}

	plan, err := scanPlan(r.pool.QueryRow(ctx, `
SELECT `+planColumns+`
FROM plans
WHERE id = $1
`, planID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Plan{}, ErrPlanNotFound
		}
		return model.Plan{}, err
	}

	return plan, nil
}

func (r *PlanRepo) Create(ctx context.Context, plan model.Plan) (model.Plan, error) {
	if r.pool == nil {
		return model.Plan{}, fmt.Errorf("postgres pool is nil")
	}
	if strings.TrimSpace(plan.Name) == "" {
		return model.Plan{}, fmt.Errorf("invalid plan payload")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO plans (
	name, price_cents, max_images, listing_duration_days, sort_order,
	can_renew, featured_listing, priority_support, analytics_access,
	custom_branding, is_active, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
RETURNING id, created_at, updated_at
`,
		strings.TrimSpace(plan.Name),
		plan.PriceCents,
		plan.MaxImages,
		plan.ListingDurationDays,
		plan.SortOrder,
		plan.CanRenew,
		plan.FeaturedListing,
		plan.PrioritySupport,
		plan.AnalyticsAccess,
		plan.CustomBranding,
		plan.IsActive,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return model.Plan{}, fmt.Errorf("create plan: %w", err)
	}

	return plan, nil
}

// UpdateFields applies a partial diff. An empty diff never touches the row.
func (r *PlanRepo) UpdateFields(ctx context.Context, planID int64, diff map[string]any) (model.Plan, error) {
	if r.pool == nil {
		return model.Plan{}, fmt.Errorf("postgres pool is nil")
	}
	if planID <= 0 {
		return model.Plan{}, fmt.Errorf("invalid plan id")
	}
	if len(diff) == 0 {
		return r.GetByID(ctx, planID)
	}

	assignments := make([]string, 0, len(diff))
	args := make([]any, 0, len(diff)+1)
	args = append(args, planID)
	for column, value := range diff {
		if !patchablePlanColumns[column] {
			return model.Plan{}, fmt.Errorf("column %q is not patchable", column)
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`
UPDATE plans
SET %s, updated_at = NOW()
WHERE id = $1
RETURNING `+planColumns, strings.Join(assignments, ", "))

	plan, err := scanPlan(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Plan{}, ErrPlanNotFound
		}
		return model.Plan{}, fmt.Errorf("update plan fields: %w", err)
	}

	return plan, nil
}

func (r *PlanRepo) Delete(ctx context.Context, planID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if planID <= 0 {
		return fmt.Errorf("invalid plan id")
	}

	res, err := r.pool.Exec(ctx, `
DELETE FROM plans
WHERE id = $1
`, planID)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	return nil
}

func scanPlan(row pgx.Row) (model.Plan, error) {
	var plan model.Plan
	err := row.Scan(
		&plan.ID,
		&plan.Name,
		&plan.PriceCents,
		&plan.MaxImages,
		&plan.ListingDurationDays,
		&plan.SortOrder,
		&plan.CanRenew,
		&plan.FeaturedListing,
		&plan.PrioritySupport,
		&plan.AnalyticsAccess,
		&plan.CustomBranding,
		&plan.IsActive,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Plan{}, pgx.ErrNoRows
		}
		return model.Plan{}, fmt.Errorf("scan plan: %w", err)
	}
	return plan, nil
}
