package model

import (
	"time"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
)

// ModerationRecord is an append-only audit row. It is created exactly once
// per moderation call and never mutated or deleted afterwards.
type ModerationRecord struct {
	ID        int64                  `json:"id"`
	UserID    int64                  `json:"user_id"`
	Action    enums.ModerationAction `json:"action"`
	Reason    string                 `json:"reason"`
	AdminID   *int64                 `json:"admin_id"`
	CreatedAt time.Time              `json:"created_at"`
}

// BannedIdentifier is a standalone denylist entry. No foreign key to the
// banned user: the entry outlives account state changes.
type BannedIdentifier struct {
	ID              int64                `json:"id"`
	IdentifierType  enums.IdentifierType `json:"identifier_type"`
	IdentifierValue string               `json:"identifier_value"`
	Reason          string               `json:"reason"`
	CreatedAt       time.Time            `json:"created_at"`
}
