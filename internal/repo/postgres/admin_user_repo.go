package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

type AdminUserRepo struct {
	pool *pgxpool.Pool
}

type AdminUserRecord struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         string
	TOTPSecret   string
}

func NewAdminUserRepo(pool *pgxpool.Pool) *AdminUserRepo {
	return &AdminUserRepo{pool: pool}
}

func (r *AdminUserRepo) FindByEmail(ctx context.Context, email string) (AdminUserRecord, error) {
	if r.pool == nil {
		return AdminUserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	clean := strings.ToLower(strings.TrimSpace(email))
	if clean == "" {
		return AdminUserRecord{}, fmt.Errorf("invalid admin email")
	}

	var admin AdminUserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, name, password_hash, role, COALESCE(totp_secret, '')
FROM admin_users
WHERE LOWER(email) = $1
`, clean).Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash, &admin.Role, &admin.TOTPSecret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AdminUserRecord{}, ErrAdminUserNotFound
		}
		return AdminUserRecord{}, fmt.Errorf("find admin by email: %w", err)
	}

	return admin, nil
}

func (r *AdminUserRepo) GetByID(ctx context.Context, adminID int64) (AdminUserRecord, error) {
	if r.pool == nil {
		return AdminUserRecord{}, fmt.Errorf("postgres pool is nil")
	}
	if adminID <= 0 {
		return AdminUserRecord{}, fmt.Errorf("invalid admin id")
	}

	var admin AdminUserRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, email, name, password_hash, role, COALESCE(totp_secret, '')
FROM admin_users
WHERE id = $1
`, adminID).Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash, &admin.Role, &admin.TOTPSecret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AdminUserRecord{}, ErrAdminUserNotFound
		}
		return AdminUserRecord{}, fmt.Errorf("get admin by id: %w", err)
	}

	return admin, nil
}

func (r *AdminUserRepo) EnableTOTP(ctx context.Context, adminID int64, secret string) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}
	if adminID <= 0 {
		return fmt.Errorf("invalid admin id")
	}
	if strings.TrimSpace(secret) == "" {
		return fmt.Errorf("invalid totp secret")
	}

	res, err := r.pool.Exec(ctx, `
UPDATE admin_users
SET totp_secret = $2
WHERE id = $1
`, adminID, secret)
	if err != nil {
		return fmt.Errorf("enable totp: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrAdminUserNotFound
	}

	return nil
}
