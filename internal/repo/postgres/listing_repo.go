package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
)

var ErrListingNotFound = errors.New("listing not found")

type ListingRepo struct {
	pool *pgxpool.Pool
}

func NewListingRepo(pool *pgxpool.Pool) *ListingRepo {
	return &ListingRepo{pool: pool}
}

const listingColumns = `id, owner_id, title, description, category_id, price_type, price, price_text,
price_unit, price_options, locations, tags, hashtags, image_keys, contact_phone, contact_email,
status, view_count, expires_at, created_at, updated_at`

// patchableListingColumns is the whitelist for partial-diff PATCH updates.
var patchableListingColumns = map[string]bool{
	"title":         true,
	"description":   true,
	"category_id":   true,
	"price_type":    true,
	"price":         true,
	"price_text":    true,
	"price_unit":    true,
	"locations":     true,
	"tags":          true,
	"hashtags":      true,
	"contact_phone": true,
	"contact_email": true,
	"status":        true,
}

func (r *ListingRepo) List(ctx context.Context) ([]model.Listing, error) {
	return r.list(ctx, "", nil)
}

func (r *ListingRepo) ListByStatus(ctx context.Context, status enums.ListingStatus) ([]model.Listing, error) {
	return r.list(ctx, "WHERE status = $1", []any{string(status)})
}

func (r *ListingRepo) list(ctx context.Context, where string, args []any) ([]model.Listing, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
SELECT %s
FROM listings
%s
ORDER BY created_at DESC, id DESC
`, listingColumns, where), args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	listings := make([]model.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	return listings, nil
}

func (r *ListingRepo) GetByID(ctx context.Context, listingID int64) (model.Listing, error) {
	if r.pool == nil {
		return model.Listing{}, fmt.Errorf("postgres pool is nil")
	}
	if listingID <= 0 {
		return model.Listing{}, fmt.Errorf("invalid listing id")
	}

	listing, err := scanListing(r.pool.QueryRow(ctx, `
SELECT `+listingColumns+`
FROM listings
WHERE id = $1
`, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Listing{}, ErrListingNotFound
		}
		return model.Listing{}, err
	}

	return listing, nil
}

func (r *ListingRepo) Create(ctx context.Context, listing model.Listing) (model.Listing, error) {
	if r.pool == nil {
		return model.Listing{}, fmt.Errorf("postgres pool is nil")
	}
	if listing.OwnerID <= 0 || strings.TrimSpace(listing.Title) == "" {
		return model.Listing{}, fmt.Errorf("invalid listing payload")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO listings (
	owner_id, title, description, category_id, price_type, price, price_text,
	price_unit, price_options, locations, tags, hashtags, image_keys,
	contact_phone, contact_email, status, view_count, expires_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 0, $17, NOW(), NOW())
RETURNING id, view_count, created_at, updated_at
`,
		listing.OwnerID,
		listing.Title,
		listing.Description,
		listing.CategoryID,
		string(listing.PriceType),
		listing.Price,
		listing.PriceText,
		string(listing.PriceUnit),
		listing.PriceOptions,
		listing.Locations,
		listing.Tags,
		listing.Hashtags,
		listing.ImageKeys,
		listing.ContactPhone,
		listing.ContactEmail,
		string(listing.Status),
		listing.ExpiresAt,
	).Scan(&listing.ID, &listing.ViewCount, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return model.Listing{}, fmt.Errorf("create listing: %w", err)
	}

	return listing, nil
}

// UpdateFields applies a partial diff: only the columns present in the diff
// are written. An empty diff is a no-op returning the current row.
func (r *ListingRepo) UpdateFields(ctx context.Context, listingID int64, diff map[string]any) (model.Listing, error) {
	if r.pool == nil {
		return model.Listing{}, fmt.Errorf("postgres pool is nil")
	}
	if listingID <= 0 {
		return model.Listing{}, fmt.Errorf("invalid listing id")
	}
	if len(diff) == 0 {
		return r.GetByID(ctx, listingID)
	}

	assignments := make([]string, 0, len(diff))
	args := make([]any, 0, len(diff)+1)
	args = append(args, listingID)
	for column, value := range diff {
		if !patchableListingColumns[column] {
			return model.Listing{}, fmt.Errorf("column %q is not patchable", column)
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`
UPDATE listings
SET %s, updated_at = NOW()
WHERE id = $1
RETURNING `+listingColumns, strings.Join(assignments, ", "))

	listing, err := scanListing(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Listing{}, ErrListingNotFound
		}
		return model.Listing{}, fmt.Errorf("update listing fields: %w", err)
	}

	return listing, nil
}

func (r *ListingRepo) Delete(ctx context.Context, listingID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if listingID <= 0 {
		return fmt.Errorf("invalid listing id")
	}

	res, err := r.pool.Exec(ctx, `
DELETE FROM listings
WHERE id = $1
`, listingID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrListingNotFound
	}

	return nil
}

func (r *ListingRepo) IncrementViewCount(ctx context.Context, listingID int64) error {
	if r.pool == nil || listingID <= 0 {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE listings
SET view_count = view_count + 1
WHERE id = $1
`, listingID); err != nil {
		return fmt.Errorf("increment listing view count: %w", err)
	}

	return nil
}

// ExpireActiveBefore flips active listings whose expiry has passed to
// expired and reports how many rows changed.
func (r *ListingRepo) ExpireActiveBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	res, err := r.pool.Exec(ctx, `
UPDATE listings
SET status = 'expired', updated_at = NOW()
WHERE status = 'active'
  AND expires_at IS NOT NULL
  AND expires_at < $1
`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("expire listings: %w", err)
	}

	return res.RowsAffected(), nil
}

func scanListing(row pgx.Row) (model.Listing, error) {
	var (
		listing   model.Listing
		priceType string
		priceUnit string
		status    string
	)
	err := row.Scan(
		&listing.ID,
		&listing.OwnerID,
		&listing.Title,
		&listing.Description,
		&listing.CategoryID,
		&priceType,
		&listing.Price,
		&listing.PriceText,
		&priceUnit,
		&listing.PriceOptions,
		&listing.Locations,
		&listing.Tags,
		&listing.Hashtags,
		&listing.ImageKeys,
		&listing.ContactPhone,
		&listing.ContactEmail,
		&status,
		&listing.ViewCount,
		&listing.ExpiresAt,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Listing{}, pgx.ErrNoRows
		}
		return model.Listing{}, fmt.Errorf("scan listing: %w", err)
	}
	listing.PriceType = enums.PriceType(priceType)
	listing.PriceUnit = enums.PriceUnit(priceUnit)
	listing.Status = enums.ListingStatus(status)
	return listing, nil
}
