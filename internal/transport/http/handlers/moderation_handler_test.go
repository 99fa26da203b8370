package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	modsvc "github.com/ivankudzin/svcmarket/internal/services/moderation"
)

func newModerationRouterForTest() chi.Router {
	h := NewModerationHandler(modsvc.NewService(nil, nil, nil, nil))
	r := chi.NewRouter()
	r.Post("/api/admin/users/{id}/moderate", h.Moderate)
	r.Get("/api/admin/users/{id}/history", h.History)
	r.Post("/api/admin/banned-identifiers", h.AddBanned)
	r.Delete("/api/admin/banned-identifiers/{id}", h.RemoveBanned)
	return r
}

func TestModerateRejectsUnknownAction(t *testing.T) {
	r := newModerationRouterForTest()

	body, err := json.Marshal(map[string]string{
		"action": "obliterate",
		"reason": "spam",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/5/moderate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code: %q", payload.Code)
	}
}

func TestModerateRejectsEmptyReason(t *testing.T) {
	r := newModerationRouterForTest()

	body, err := json.Marshal(map[string]string{
		"action": "ban",
		"reason": "   ",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/5/moderate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestModerateRejectsMalformedUserID(t *testing.T) {
	r := newModerationRouterForTest()

	body, err := json.Marshal(map[string]string{
		"action": "warn",
		"reason": "spam",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/abc/moderate", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestAddBannedRejectsUnknownIdentifierType(t *testing.T) {
	r := newModerationRouterForTest()

	body, err := json.Marshal(map[string]string{
		"identifier_type":  "passport",
		"identifier_value": "AB123",
		"reason":           "fraud",
	})
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/banned-identifiers", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestRemoveBannedRejectsMalformedID(t *testing.T) {
	r := newModerationRouterForTest()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/banned-identifiers/zero", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
	}
}
