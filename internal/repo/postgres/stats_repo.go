package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

// PlatformStats is the snapshot handed to the admin assistant as context.
type PlatformStats struct {
	TotalUsers         int64 `json:"total_users"`
	ActiveUsers        int64 `json:"active_users"`
	TotalListings      int64 `json:"total_listings"`
	ActiveListings     int64 `json:"active_listings"`
	PendingSuggestions int64 `json:"pending_suggestions"`
	BannedIdentifiers  int64 `json:"banned_identifiers"`
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

func (r *StatsRepo) Snapshot(ctx context.Context) (PlatformStats, error) {
	if r.pool == nil {
		return PlatformStats{}, fmt.Errorf("postgres pool is nil")
	}

	var stats PlatformStats
	err := r.pool.QueryRow(ctx, `
SELECT
	(SELECT COUNT(*) FROM users),
	(SELECT COUNT(*) FROM users WHERE status = 'active'),
	(SELECT COUNT(*) FROM listings),
	(SELECT COUNT(*) FROM listings WHERE status = 'active'),
	(SELECT COUNT(*) FROM category_suggestions WHERE status = 'pending'),
	(SELECT COUNT(*) FROM banned_identifiers)
`).Scan(
		&stats.TotalUsers,
		&stats.ActiveUsers,
		&stats.TotalListings,
		&stats.ActiveListings,
		&stats.PendingSuggestions,
		&stats.BannedIdentifiers,
	)
	if err != nil {
		return PlatformStats{}, fmt.Errorf("collect platform stats: %w", err)
	}

	return stats, nil
}
