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

var ErrBannedIdentifierNotFound = errors.New("banned identifier not found")

type ModerationRepo struct {
	pool *pgxpool.Pool
}

func NewModerationRepo(pool *pgxpool.Pool) *ModerationRepo {
	return &ModerationRepo{pool: pool}
}

// AppendActionTx inserts the audit row inside the same transaction as the
// status update so a moderation call never produces one without the other.
func (r *ModerationRepo) AppendActionTx(ctx context.Context, tx pgx.Tx, record model.ModerationRecord) (model.ModerationRecord, error) {
	if tx == nil {
		return model.ModerationRecord{}, fmt.Errorf("tx is nil")
	}
	if record.UserID <= 0 || strings.TrimSpace(record.Reason) == "" {
		return model.ModerationRecord{}, fmt.Errorf("invalid moderation record payload")
	}

	err := tx.QueryRow(ctx, `
INSERT INTO moderation_actions (user_id, action, reason, admin_id, created_at)
VALUES ($1, $2, $3, $4, NOW())
RETURNING id, created_at
`, record.UserID, string(record.Action), strings.TrimSpace(record.Reason), record.AdminID).
		Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return model.ModerationRecord{}, fmt.Errorf("append moderation action: %w", err)
	}

	return record, nil
}

func (r *ModerationRepo) ListByUser(ctx context.Context, userID int64) ([]model.ModerationRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, action, reason, admin_id, created_at
FROM moderation_actions
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list moderation actions: %w", err)
	}
	defer rows.Close()

	records := make([]model.ModerationRecord, 0)
	for rows.Next() {
		var (
			record model.ModerationRecord
			action string
		)
		if err := rows.Scan(&record.ID, &record.UserID, &action, &record.Reason, &record.AdminID, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan moderation action: %w", err)
		}
		record.Action = enums.ModerationAction(action)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moderation actions: %w", err)
	}

	return records, nil
}

func (r *ModerationRepo) InsertBannedIdentifier(ctx context.Context, identifierType enums.IdentifierType, value, reason string) (model.BannedIdentifier, error) {
	if r.pool == nil {
		return model.BannedIdentifier{}, fmt.Errorf("postgres pool is nil")
	}
	cleanValue := strings.TrimSpace(value)
	if cleanValue == "" {
		return model.BannedIdentifier{}, fmt.Errorf("identifier value is required")
	}

	entry := model.BannedIdentifier{
		IdentifierType:  identifierType,
		IdentifierValue: cleanValue,
		Reason:          strings.TrimSpace(reason),
	}
	err := r.pool.QueryRow(ctx, `
INSERT INTO banned_identifiers (identifier_type, identifier_value, reason, created_at)
VALUES ($1, $2, $3, NOW())
RETURNING id, created_at
`, string(identifierType), cleanValue, entry.Reason).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return model.BannedIdentifier{}, fmt.Errorf("insert banned identifier: %w", err)
	}

	return entry, nil
}

func (r *ModerationRepo) ListBannedIdentifiers(ctx context.Context) ([]model.BannedIdentifier, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, identifier_type, identifier_value, reason, created_at
FROM banned_identifiers
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list banned identifiers: %w", err)
	}
	defer rows.Close()

	entries := make([]model.BannedIdentifier, 0)
	for rows.Next() {
		var (
			entry          model.BannedIdentifier
			identifierType string
		)
		if err := rows.Scan(&entry.ID, &identifierType, &entry.IdentifierValue, &entry.Reason, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan banned identifier: %w", err)
		}
		entry.IdentifierType = enums.IdentifierType(identifierType)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banned identifiers: %w", err)
	}

	return entries, nil
}

func (r *ModerationRepo) DeleteBannedIdentifier(ctx context.Context, id int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if id <= 0 {
		return fmt.Errorf("invalid banned identifier id")
	}

	res, err := r.pool.Exec(ctx, `
DELETE FROM banned_identifiers
WHERE id = $1
`, id)
	if err != nil {
		return fmt.Errorf("delete banned identifier: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrBannedIdentifierNotFound
	}

	return nil
}
