package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("invalid user input")
	ErrUserNotFound = errors.New("user not found")
)

type Service struct {
	users *pgrepo.UserRepo
}

// AdminPatch carries only the fields an administrator may change. Nil
// pointers mean "leave as is".
type AdminPatch struct {
	IsVerified *bool
	IsAdmin    *bool
	PlanID     *int64
	ClearPlan  bool
}

func NewService(users *pgrepo.UserRepo) *Service {
	return &Service{users: users}
}

func (s *Service) List(ctx context.Context) ([]model.User, error) {
	if s.users == nil {
		return nil, fmt.Errorf("users service dependencies are not configured")
	}
	return s.users.List(ctx)
}

func (s *Service) Get(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrValidation
	}
	if s.users == nil {
		return model.User{}, fmt.Errorf("users service dependencies are not configured")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

// Patch loads the current row, diffs the requested fields against it and
// updates only columns whose value actually changed. A patch that changes
// nothing is a plain read.
func (s *Service) Patch(ctx context.Context, userID int64, patch AdminPatch) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrValidation
	}
	if patch.PlanID != nil && *patch.PlanID <= 0 {
		return model.User{}, ErrValidation
	}
	if patch.PlanID != nil && patch.ClearPlan {
		return model.User{}, ErrValidation
	}
	if s.users == nil {
		return model.User{}, fmt.Errorf("users service dependencies are not configured")
	}

	current, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}

	diff := Diff(current, patch)
	if len(diff) == 0 {
		return current, nil
	}

	updated, err := s.users.UpdateAdminFields(ctx, userID, diff)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return updated, nil
}

// Diff returns the column set a patch would change on the given user.
func Diff(current model.User, patch AdminPatch) map[string]any {
	diff := map[string]any{}

	if patch.IsVerified != nil && *patch.IsVerified != current.IsVerified {
		diff["is_verified"] = *patch.IsVerified
	}
	if patch.IsAdmin != nil && *patch.IsAdmin != current.IsAdmin {
		diff["is_admin"] = *patch.IsAdmin
	}
	if patch.ClearPlan {
		if current.PlanID != nil {
			diff["plan_id"] = nil
		}
	} else if patch.PlanID != nil {
		if current.PlanID == nil || *current.PlanID != *patch.PlanID {
			diff["plan_id"] = *patch.PlanID
		}
	}

	return diff
}
