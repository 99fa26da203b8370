package adminauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

type AdminUserStore interface {
	FindByEmail(ctx context.Context, email string) (pgrepo.AdminUserRecord, error)
	GetByID(ctx context.Context, adminID int64) (pgrepo.AdminUserRecord, error)
	EnableTOTP(ctx context.Context, adminID int64, secret string) error
}

type SessionStore interface {
	Create(ctx context.Context, session SessionRecord, ttl time.Duration) error
	Touch(ctx context.Context, sid string, ttl time.Duration) (SessionRecord, error)
	Delete(ctx context.Context, sid string) error
}

type Service struct {
	admins     AdminUserStore
	sessions   SessionStore
	tokens     *JWTManager
	sessionTTL time.Duration
}

func NewService(admins AdminUserStore, sessions SessionStore, tokens *JWTManager, sessionTTL time.Duration) *Service {
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	return &Service{
		admins:     admins,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
	}
}

// Login checks the credentials and, when the account has an authenticator
// enrolled, a time-based one-time code. A missing code on a 2FA account maps
// to ErrTOTPRequired so the client can prompt for it.
func (s *Service) Login(ctx context.Context, email, password, totpCode string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return LoginResult{}, ErrInvalidInput
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdminUserNotFound) {
			return LoginResult{}, ErrUnauthorized
		}
		return LoginResult{}, fmt.Errorf("find admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, ErrUnauthorized
	}

	if admin.TOTPSecret != "" {
		if strings.TrimSpace(totpCode) == "" {
			return LoginResult{}, ErrTOTPRequired
		}
		if !validateTOTP(admin.TOTPSecret, totpCode, time.Now().UTC()) {
			return LoginResult{}, ErrUnauthorized
		}
	}

	sid := uuid.NewString()
	session := SessionRecord{
		SID:     sid,
		AdminID: admin.ID,
		Email:   admin.Email,
		Name:    admin.Name,
		Role:    admin.Role,
	}
	if err := s.sessions.Create(ctx, session, s.sessionTTL); err != nil {
		return LoginResult{}, fmt.Errorf("create admin session: %w", err)
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(admin.ID, sid, admin.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue access token: %w", err)
	}

	return LoginResult{
		AccessToken:   token,
		AccessExpires: expiresAt,
		Admin: AdminInfo{
			ID:    admin.ID,
			Email: admin.Email,
			Name:  admin.Name,
			Role:  admin.Role,
		},
	}, nil
}

// Validate parses the bearer token and slides the backing session so the
// admin stays signed in while actively working.
func (s *Service) Validate(ctx context.Context, accessToken string) (Identity, error) {
	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	session, err := s.sessions.Touch(ctx, claims.SID, s.sessionTTL)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Identity{}, ErrSessionNotFound
		}
		return Identity{}, fmt.Errorf("touch admin session: %w", err)
	}
	if session.AdminID != claims.AdminID {
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		AdminID: session.AdminID,
		SID:     session.SID,
		Email:   session.Email,
		Name:    session.Name,
		Role:    session.Role,
	}, nil
}

func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return ErrUnauthorized
	}

	if err := s.sessions.Delete(ctx, claims.SID); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	return nil
}

func (s *Service) Session(ctx context.Context, identity Identity) (AdminInfo, error) {
	admin, err := s.admins.GetByID(ctx, identity.AdminID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrAdminUserNotFound) {
			return AdminInfo{}, ErrUnauthorized
		}
		return AdminInfo{}, fmt.Errorf("get admin user: %w", err)
	}

	return AdminInfo{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Role:  admin.Role,
	}, nil
}
