package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
	adminauthsvc "github.com/ivankudzin/svcmarket/internal/services/adminauth"
)

type adminStoreStub struct {
	admin pgrepo.AdminUserRecord
}

func (s adminStoreStub) FindByEmail(_ context.Context, email string) (pgrepo.AdminUserRecord, error) {
	if email != s.admin.Email {
		return pgrepo.AdminUserRecord{}, pgrepo.ErrAdminUserNotFound
	}
	return s.admin, nil
}

func (s adminStoreStub) GetByID(_ context.Context, adminID int64) (pgrepo.AdminUserRecord, error) {
	if adminID != s.admin.ID {
		return pgrepo.AdminUserRecord{}, pgrepo.ErrAdminUserNotFound
	}
	return s.admin, nil
}

func (s adminStoreStub) EnableTOTP(_ context.Context, adminID int64, _ string) error {
	if adminID != s.admin.ID {
		return pgrepo.ErrAdminUserNotFound
	}
	return nil
}

type sessionStoreStub struct {
	mu       sync.Mutex
	sessions map[string]adminauthsvc.SessionRecord
}

func newSessionStoreStub() *sessionStoreStub {
	return &sessionStoreStub{sessions: make(map[string]adminauthsvc.SessionRecord)}
}

func (s *sessionStoreStub) Create(_ context.Context, session adminauthsvc.SessionRecord, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SID] = session
	return nil
}

func (s *sessionStoreStub) Touch(_ context.Context, sid string, _ time.Duration) (adminauthsvc.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sid]
	if !ok {
		return adminauthsvc.SessionRecord{}, adminauthsvc.ErrSessionNotFound
	}
	return session, nil
}

func (s *sessionStoreStub) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

func newAuthHandlerForTest(t *testing.T) (*AuthHandler, *sessionStoreStub) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	admins := adminStoreStub{admin: pgrepo.AdminUserRecord{
		ID:           7,
		Email:        "owner@example.com",
		Name:         "Owner",
		PasswordHash: string(hash),
		Role:         "OWNER",
	}}
	sessions := newSessionStoreStub()
	tokens := adminauthsvc.NewJWTManager("test-secret", 15*time.Minute)
	svc := adminauthsvc.NewService(admins, sessions, tokens, time.Hour)

	return NewAuthHandler(svc, nil), sessions
}

func TestLoginReturnsBearerToken(t *testing.T) {
	h, _ := newAuthHandlerForTest(t)

	body, err := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "correct-horse",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		TokenType    string `json:"token_type"`
		ExpiresInSec int64  `json:"expires_in_sec"`
		Admin        struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		} `json:"admin"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.AccessToken == "" {
		t.Fatalf("access token missing")
	}
	if payload.TokenType != "Bearer" {
		t.Fatalf("unexpected token type: %q", payload.TokenType)
	}
	if payload.ExpiresInSec <= 0 {
		t.Fatalf("unexpected expires_in_sec: %d", payload.ExpiresInSec)
	}
	if payload.Admin.ID != 7 || payload.Admin.Role != "OWNER" {
		t.Fatalf("unexpected admin payload: %+v", payload.Admin)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	h, _ := newAuthHandlerForTest(t)

	body, err := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "wrong",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "UNAUTHORIZED" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestLogoutDropsSession(t *testing.T) {
	h, sessions := newAuthHandlerForTest(t)

	body, err := json.Marshal(map[string]string{
		"email":    "owner@example.com",
		"password": "correct-horse",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	loginReq := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	loginRR := httptest.NewRecorder()
	h.Login(loginRR, loginReq)
	if loginRR.Code != http.StatusOK {
		t.Fatalf("login failed: %d", loginRR.Code)
	}

	var loginPayload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(loginRR.Body.Bytes(), &loginPayload); err != nil {
		t.Fatalf("decode login response: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer "+loginPayload.AccessToken)
	rr := httptest.NewRecorder()
	h.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusOK)
	}
	if len(sessions.sessions) != 0 {
		t.Fatalf("session not dropped: %d left", len(sessions.sessions))
	}
}

func TestSessionRequiresIdentity(t *testing.T) {
	h, _ := newAuthHandlerForTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/session", nil)
	rr := httptest.NewRecorder()
	h.Session(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}
