package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
)

var (
	ErrSuggestionNotFound = errors.New("category suggestion not found")
	ErrSuggestionDecided  = errors.New("category suggestion already decided")
)

type SuggestionRepo struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepo(pool *pgxpool.Pool) *SuggestionRepo {
	return &SuggestionRepo{pool: pool}
}

func (r *SuggestionRepo) List(ctx context.Context) ([]model.SubmittedCategory, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, submitter_id, status, created_at, updated_at
FROM category_suggestions
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list category suggestions: %w", err)
	}
	defer rows.Close()

	suggestions := make([]model.SubmittedCategory, 0)
	for rows.Next() {
		var (
			suggestion model.SubmittedCategory
			status     string
		)
		if err := rows.Scan(&suggestion.ID, &suggestion.Name, &suggestion.SubmitterID, &status, &suggestion.CreatedAt, &suggestion.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category suggestion: %w", err)
		}
		suggestion.Status = enums.SuggestionStatus(status)
		suggestions = append(suggestions, suggestion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category suggestions: %w", err)
	}

	return suggestions, nil
}

func (r *SuggestionRepo) Create(ctx context.Context, name string, submitterID *int64) (model.SubmittedCategory, error) {
	if r.pool == nil {
		return model.SubmittedCategory{}, fmt.Errorf("postgres pool is nil")
	}
	clean := strings.TrimSpace(name)
	if clean == "" {
		return model.SubmittedCategory{}, fmt.Errorf("suggestion name is required")
	}

	suggestion := model.SubmittedCategory{
		Name:        clean,
		SubmitterID: submitterID,
		Status:      enums.SuggestionStatusPending,
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO category_suggestions (name, submitter_id, status, created_at, updated_at)
VALUES ($1, $2, 'pending', NOW(), NOW())
RETURNING id, created_at, updated_at
`, clean, submitterID).Scan(&suggestion.ID, &suggestion.CreatedAt, &suggestion.UpdatedAt)
	if err != nil {
		return model.SubmittedCategory{}, fmt.Errorf("create category suggestion: %w", err)
	}

	return suggestion, nil
}

// Decide moves a pending suggestion to approved or rejected. Terminal:
// an already-decided suggestion cannot be re-decided or moved back.
func (r *SuggestionRepo) Decide(ctx context.Context, suggestionID int64, status enums.SuggestionStatus) (model.SubmittedCategory, error) {
	if r.pool == nil {
		return model.SubmittedCategory{}, fmt.Errorf("postgres pool is nil")
	}
	if suggestionID <= 0 {
		return model.SubmittedCategory{}, fmt.Errorf("invalid suggestion id")
	}

	var (
		suggestion model.SubmittedCategory
		newStatus  string
	)
	err := r.pool.QueryRow(ctx, `
UPDATE category_suggestions
SET status = $2, updated_at = NOW()
WHERE id = $1
  AND status = 'pending'
RETURNING id, name, submitter_id, status, created_at, updated_at
`, suggestionID, string(status)).
		Scan(&suggestion.ID, &suggestion.Name, &suggestion.SubmitterID, &newStatus, &suggestion.CreatedAt, &suggestion.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SubmittedCategory{}, r.decideFailure(ctx, suggestionID)
		}
		return model.SubmittedCategory{}, fmt.Errorf("decide category suggestion: %w", err)
	}
	suggestion.Status = enums.SuggestionStatus(newStatus)

	return suggestion, nil
}

func (r *SuggestionRepo) decideFailure(ctx context.Context, suggestionID int64) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM category_suggestions WHERE id = $1)
`, suggestionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check suggestion existence: %w", err)
	}
	if !exists {
		return ErrSuggestionNotFound
	}
	return ErrSuggestionDecided
}
