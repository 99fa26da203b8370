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

type SettingsRepo struct {
	pool *pgxpool.Pool
}

func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get reads the singleton row. A missing row falls back to the provided
// defaults so a fresh database behaves sanely before the first save.
func (r *SettingsRepo) Get(ctx context.Context, defaults model.Settings) (model.Settings, error) {
	if r.pool == nil {
		return model.Settings{}, fmt.Errorf("postgres pool is nil")
	}

	var settings model.Settings
	err := r.pool.QueryRow(ctx, `
SELECT require_email_verification, require_phone_verification, moderate_new_listings,
       service_fee_percent, featured_fee_percent, updated_at
FROM marketplace_settings
WHERE id = 1
`).Scan(
		&settings.RequireEmailVerification,
		&settings.RequirePhoneVerification,
		&settings.ModerateNewListings,
		&settings.ServiceFeePercent,
		&settings.FeaturedFeePercent,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaults, nil
		}
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}

	return settings, nil
}

// Overwrite replaces the whole singleton row: settings are saved wholesale,
// never field by field.
func (r *SettingsRepo) Overwrite(ctx context.Context, settings model.Settings) (model.Settings, error) {
	if r.pool == nil {
		return model.Settings{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO marketplace_settings (
	id, require_email_verification, require_phone_verification, moderate_new_listings,
	service_fee_percent, featured_fee_percent, updated_at
) VALUES (1, $1, $2, $3, $4, $5, NOW())
ON CONFLICT (id) DO UPDATE SET
	require_email_verification = EXCLUDED.require_email_verification,
	require_phone_verification = EXCLUDED.require_phone_verification,
	moderate_new_listings = EXCLUDED.moderate_new_listings,
	service_fee_percent = EXCLUDED.service_fee_percent,
	featured_fee_percent = EXCLUDED.featured_fee_percent,
	updated_at = EXCLUDED.updated_at
RETURNING updated_at
`,
		settings.RequireEmailVerification,
		settings.RequirePhoneVerification,
		settings.ModerateNewListings,
		settings.ServiceFeePercent,
		settings.FeaturedFeePercent,
	).Scan(&settings.UpdatedAt)
	if err != nil {
		return model.Settings{}, fmt.Errorf("overwrite settings: %w", err)
	}

	return settings, nil
}

// UpsertCredential stores a third-party credential. Values are write-only:
// nothing here ever reads them back out to a client.
func (r *SettingsRepo) UpsertCredential(ctx context.Context, name, value string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	cleanName := strings.TrimSpace(name)
	if cleanName == "" || strings.TrimSpace(value) == "" {
		return fmt.Errorf("invalid credential payload")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO api_credentials (name, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (name) DO UPDATE SET
	value = EXCLUDED.value,
	updated_at = EXCLUDED.updated_at
`, cleanName, value); err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}

	return nil
}

// CredentialNames lists which credentials are configured, never the values.
func (r *SettingsRepo) CredentialNames(ctx context.Context) ([]string, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT name
FROM api_credentials
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list credential names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan credential name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credential names: %w", err)
	}

	return names, nil
}
