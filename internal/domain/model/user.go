package model

import (
	"time"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
)

type User struct {
	ID         int64            `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Status     enums.UserStatus `json:"status"`
	IsVerified bool             `json:"is_verified"`
	IsAdmin    bool             `json:"is_admin"`
	PlanID     *int64           `json:"plan_id"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}
