package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

type userStoreStub struct {
	users         map[int64]model.User
	statusUpdates []enums.UserStatus
}

func (s *userStoreStub) GetByID(_ context.Context, userID int64) (model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return model.User{}, pgrepo.ErrUserNotFound
	}
	return user, nil
}

func (s *userStoreStub) UpdateStatusTx(_ context.Context, _ pgx.Tx, _ int64, status enums.UserStatus) error {
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

type recordStoreStub struct {
	appended []model.ModerationRecord
	banned   []model.BannedIdentifier
}

func (s *recordStoreStub) AppendActionTx(_ context.Context, _ pgx.Tx, record model.ModerationRecord) (model.ModerationRecord, error) {
	record.ID = int64(len(s.appended) + 1)
	s.appended = append(s.appended, record)
	return record, nil
}

func (s *recordStoreStub) ListByUser(_ context.Context, userID int64) ([]model.ModerationRecord, error) {
	out := make([]model.ModerationRecord, 0)
	for _, record := range s.appended {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func (s *recordStoreStub) InsertBannedIdentifier(_ context.Context, identifierType enums.IdentifierType, value, reason string) (model.BannedIdentifier, error) {
	entry := model.BannedIdentifier{
		ID:              int64(len(s.banned) + 1),
		IdentifierType:  identifierType,
		IdentifierValue: value,
		Reason:          reason,
	}
	s.banned = append(s.banned, entry)
	return entry, nil
}

func (s *recordStoreStub) ListBannedIdentifiers(_ context.Context) ([]model.BannedIdentifier, error) {
	return s.banned, nil
}

func (s *recordStoreStub) DeleteBannedIdentifier(_ context.Context, _ int64) error {
	return nil
}

func newStubbedService(users *userStoreStub, records *recordStoreStub) *Service {
	svc := NewService(nil, users, records, nil)
	svc.runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		return fn(ctx, nil)
	}
	return svc
}

func TestModerateInputValidation(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	tests := []struct {
		name string
		in   ModerateInput
	}{
		{name: "missing user id", in: ModerateInput{Action: enums.ModerationActionWarn, Reason: "spam"}},
		{name: "unknown action", in: ModerateInput{UserID: 1, Action: "obliterate", Reason: "spam"}},
		{name: "empty reason", in: ModerateInput{UserID: 1, Action: enums.ModerationActionWarn}},
		{name: "whitespace reason", in: ModerateInput{UserID: 1, Action: enums.ModerationActionBan, Reason: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Moderate(context.Background(), tt.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestModerateBanAppendsOneRecordAndDenylistsIdentifiers(t *testing.T) {
	users := &userStoreStub{users: map[int64]model.User{
		7: {ID: 7, Email: "spam@example.com", Status: enums.UserStatusActive},
	}}
	records := &recordStoreStub{}
	svc := newStubbedService(users, records)

	res, err := svc.Moderate(context.Background(), ModerateInput{
		UserID: 7,
		Action: enums.ModerationActionBan,
		Reason: "spam",
		IP:     "203.0.113.9",
	})
	if err != nil {
		t.Fatalf("moderate: %v", err)
	}

	if res.User.Status != enums.UserStatusBanned {
		t.Fatalf("unexpected user status: %s", res.User.Status)
	}
	if len(records.appended) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(records.appended))
	}
	if got := records.appended[0]; got.UserID != 7 || got.Action != enums.ModerationActionBan || got.Reason != "spam" {
		t.Fatalf("unexpected audit record: %+v", got)
	}
	if len(users.statusUpdates) != 1 || users.statusUpdates[0] != enums.UserStatusBanned {
		t.Fatalf("unexpected status updates: %v", users.statusUpdates)
	}

	byType := map[enums.IdentifierType]string{}
	for _, entry := range records.banned {
		byType[entry.IdentifierType] = entry.IdentifierValue
	}
	if len(records.banned) != 2 {
		t.Fatalf("expected email and ip denylist entries, got %v", records.banned)
	}
	if byType[enums.IdentifierTypeIP] != "203.0.113.9" {
		t.Fatalf("missing ip denylist entry: %v", records.banned)
	}
	if byType[enums.IdentifierTypeEmail] != "spam@example.com" {
		t.Fatalf("missing email denylist entry: %v", records.banned)
	}
}

func TestModerateReactivateAppendsOneRecordRegardlessOfPriorStatus(t *testing.T) {
	users := &userStoreStub{users: map[int64]model.User{
		3: {ID: 3, Email: "back@example.com", Status: enums.UserStatusBanned},
	}}
	records := &recordStoreStub{}
	svc := newStubbedService(users, records)

	res, err := svc.Moderate(context.Background(), ModerateInput{
		UserID: 3,
		Action: enums.ModerationActionReactivate,
		Reason: "appeal accepted",
	})
	if err != nil {
		t.Fatalf("moderate: %v", err)
	}

	if res.User.Status != enums.UserStatusActive {
		t.Fatalf("unexpected user status: %s", res.User.Status)
	}
	if len(records.appended) != 1 {
		t.Fatalf("expected exactly one audit record, got %d", len(records.appended))
	}
	if len(records.banned) != 0 {
		t.Fatalf("reactivate must not touch the denylist, got %v", records.banned)
	}
}

func TestModerateUnknownUser(t *testing.T) {
	svc := newStubbedService(&userStoreStub{users: map[int64]model.User{}}, &recordStoreStub{})

	if _, err := svc.Moderate(context.Background(), ModerateInput{UserID: 99, Action: enums.ModerationActionWarn, Reason: "spam"}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddBannedIdentifierValidation(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	if _, err := svc.AddBannedIdentifier(context.Background(), "passport", "x", "fraud"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown identifier type, got %v", err)
	}
	if _, err := svc.AddBannedIdentifier(context.Background(), enums.IdentifierTypeIP, "  ", "fraud"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty value, got %v", err)
	}
}

func TestHistoryValidation(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	if _, err := svc.History(context.Background(), 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRemoveBannedIdentifierValidation(t *testing.T) {
	svc := NewService(nil, nil, nil, nil)

	if err := svc.RemoveBannedIdentifier(context.Background(), -4); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
