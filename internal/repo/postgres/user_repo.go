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

var ErrUserNotFound = errors.New("user not found")

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, name, email, status, is_verified, is_admin, plan_id, created_at, updated_at`

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT `+userColumns+`
FROM users
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}

	row := r.pool.QueryRow(ctx, `
SELECT `+userColumns+`
FROM users
WHERE id = $1
`, userID)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	return user, nil
}

// UpdateAdminFields applies only the fields present in the diff. Allowed
// keys: is_verified, is_admin, plan_id.
func (r *UserRepo) UpdateAdminFields(ctx context.Context, userID int64, diff map[string]any) (model.User, error) {
	if r.pool == nil {
		return model.User{}, fmt.Errorf("postgres pool is nil")
	}
	if userID <= 0 {
		return model.User{}, fmt.Errorf("invalid user id")
	}
	if len(diff) == 0 {
		return r.GetByID(ctx, userID)
	}

	allowed := map[string]bool{"is_verified": true, "is_admin": true, "plan_id": true}
	assignments := make([]string, 0, len(diff))
	args := make([]any, 0, len(diff)+1)
	args = append(args, userID)
	for column, value := range diff {
		if !allowed[column] {
			return model.User{}, fmt.Errorf("column %q is not patchable", column)
		}
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf(`
UPDATE users
SET %s, updated_at = NOW()
WHERE id = $1
RETURNING `+userColumns, strings.Join(assignments, ", "))

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("update user fields: %w", err)
	}

	return user, nil
}

func (r *UserRepo) UpdateStatusTx(ctx context.Context, tx pgx.Tx, userID int64, status enums.UserStatus) error {
	if tx == nil {
		return fmt.Errorf("tx is nil")
	}

	res, err := tx.Exec(ctx, `
UPDATE users
SET status = $2, updated_at = NOW()
WHERE id = $1
`, userID, string(status))
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if res.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var (
		user   model.User
		status string
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&status,
		&user.IsVerified,
		&user.IsAdmin,
		&user.PlanID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, pgx.ErrNoRows
		}
		return model.User{}, fmt.Errorf("scan user: %w", err)
	}
	user.Status = enums.UserStatus(status)
	return user, nil
}
