package dto

import "github.com/ivankudzin/svcmarket/internal/domain/model"

type UsersListResponse struct {
	Users []model.User `json:"users"`
}

type UserResponse struct {
	User model.User `json:"user"`
}

// UserPatchRequest carries only the admin-editable flags. Omitted fields
// stay untouched; clear_plan detaches the plan explicitly.
type UserPatchRequest struct {
	IsVerified *bool  `json:"is_verified,omitempty"`
	IsAdmin    *bool  `json:"is_admin,omitempty"`
	PlanID     *int64 `json:"plan_id,omitempty"`
	ClearPlan  bool   `json:"clear_plan,omitempty"`
}
