package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	"github.com/ivankudzin/svcmarket/internal/domain/rules"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("invalid moderation input")
	ErrUserNotFound = errors.New("user not found")
)

type userStore interface {
	GetByID(ctx context.Context, userID int64) (model.User, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, userID int64, status enums.UserStatus) error
}

type recordStore interface {
	AppendActionTx(ctx context.Context, tx pgx.Tx, record model.ModerationRecord) (model.ModerationRecord, error)
	ListByUser(ctx context.Context, userID int64) ([]model.ModerationRecord, error)
	InsertBannedIdentifier(ctx context.Context, identifierType enums.IdentifierType, value, reason string) (model.BannedIdentifier, error)
	ListBannedIdentifiers(ctx context.Context) ([]model.BannedIdentifier, error)
	DeleteBannedIdentifier(ctx context.Context, id int64) error
}

type Service struct {
	users   userStore
	records recordStore
	runTx   func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
	log     *zap.Logger
}

type ModerateInput struct {
	UserID  int64
	Action  enums.ModerationAction
	Reason  string
	AdminID *int64
	IP      string
	Phone   string
}

type ModerateResult struct {
	User   model.User
	Record model.ModerationRecord
}

func NewService(pool *pgxpool.Pool, users userStore, records recordStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		users:   users,
		records: records,
		runTx: func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
			return pgrepo.WithTx(ctx, pool, fn)
		},
		log: log,
	}
}

// Moderate applies a disciplinary action to a user: the status change and
// the audit record commit in one transaction. Denylist inserts for bans run
// afterwards on a best-effort basis and never fail the call.
func (s *Service) Moderate(ctx context.Context, in ModerateInput) (ModerateResult, error) {
	if in.UserID <= 0 {
		return ModerateResult{}, ErrValidation
	}
	if !rules.ValidAction(in.Action) {
		return ModerateResult{}, ErrValidation
	}
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return ModerateResult{}, ErrValidation
	}
	if s.users == nil || s.records == nil {
		return ModerateResult{}, fmt.Errorf("moderation service dependencies are not configured")
	}

	user, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ModerateResult{}, ErrUserNotFound
		}
		return ModerateResult{}, fmt.Errorf("get user: %w", err)
	}

	status, _ := rules.StatusForAction(in.Action)

	var record model.ModerationRecord
	err = s.runTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.users.UpdateStatusTx(ctx, tx, in.UserID, status); err != nil {
			return err
		}
		record, err = s.records.AppendActionTx(ctx, tx, model.ModerationRecord{
			UserID:  in.UserID,
			Action:  in.Action,
			Reason:  in.Reason,
			AdminID: in.AdminID,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return ModerateResult{}, ErrUserNotFound
		}
		return ModerateResult{}, fmt.Errorf("apply moderation action: %w", err)
	}

	user.Status = status

	if in.Action == enums.ModerationActionBan {
		s.banIdentifiers(ctx, user, in)
	}

	return ModerateResult{User: user, Record: record}, nil
}

func (s *Service) banIdentifiers(ctx context.Context, user model.User, in ModerateInput) {
	candidates := []struct {
		kind  enums.IdentifierType
		value string
	}{
		{enums.IdentifierTypeEmail, strings.TrimSpace(user.Email)},
		{enums.IdentifierTypeIP, strings.TrimSpace(in.IP)},
		{enums.IdentifierTypePhone, strings.TrimSpace(in.Phone)},
	}

	for _, candidate := range candidates {
		if candidate.value == "" {
			continue
		}
		if _, err := s.records.InsertBannedIdentifier(ctx, candidate.kind, candidate.value, in.Reason); err != nil {
			s.log.Warn("ban identifier insert failed",
				zap.Int64("user_id", user.ID),
				zap.String("identifier_type", string(candidate.kind)),
				zap.Error(err))
		}
	}
}

func (s *Service) History(ctx context.Context, userID int64) ([]model.ModerationRecord, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.users == nil || s.records == nil {
		return nil, fmt.Errorf("moderation service dependencies are not configured")
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return s.records.ListByUser(ctx, userID)
}

func (s *Service) ListBannedIdentifiers(ctx context.Context) ([]model.BannedIdentifier, error) {
	if s.records == nil {
		return nil, fmt.Errorf("moderation service dependencies are not configured")
	}
	return s.records.ListBannedIdentifiers(ctx)
}

func (s *Service) AddBannedIdentifier(ctx context.Context, identifierType enums.IdentifierType, value, reason string) (model.BannedIdentifier, error) {
	switch identifierType {
	case enums.IdentifierTypeIP, enums.IdentifierTypeEmail, enums.IdentifierTypePhone:
	default:
		return model.BannedIdentifier{}, ErrValidation
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return model.BannedIdentifier{}, ErrValidation
	}
	if s.records == nil {
		return model.BannedIdentifier{}, fmt.Errorf("moderation service dependencies are not configured")
	}

	return s.records.InsertBannedIdentifier(ctx, identifierType, value, strings.TrimSpace(reason))
}

func (s *Service) RemoveBannedIdentifier(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrValidation
	}
	if s.records == nil {
		return fmt.Errorf("moderation service dependencies are not configured")
	}
	return s.records.DeleteBannedIdentifier(ctx, id)
}
