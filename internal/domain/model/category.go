package model

import (
	"time"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmittedCategory struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	SubmitterID *int64                 `json:"submitter_id"`
	Status      enums.SuggestionStatus `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}
