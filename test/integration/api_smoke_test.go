package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/ivankudzin/svcmarket/internal/app/apiapp"
	"github.com/ivankudzin/svcmarket/internal/config"
)

func newTestApp(t *testing.T) *apiapp.App {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"
	cfg.Postgres.DSN = ""

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}
	return app
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	ts := httptest.NewServer(app.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.OK {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestAdminRoutesRequireBearerToken(t *testing.T) {
	app := newTestApp(t)

	ts := httptest.NewServer(app.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/admin/users")
	if err != nil {
		t.Fatalf("get admin users: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestDraftPreviewNeedsNoBackingStores(t *testing.T) {
	app := newTestApp(t)

	ts := httptest.NewServer(app.Handler())
	defer ts.Close()

	body := `{
		"category_slug": "plumbing",
		"service_name": "Pipe repair",
		"description": "Emergency pipe repair",
		"images": ["img/1.jpg"],
		"locations": "Riga, Jurmala",
		"pricing": {"mode": "fixed", "rate": 4500, "unit": "hour"}
	}`

	resp, err := http.Post(ts.URL+"/api/services/draft/preview", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post draft preview: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		CompletionPercent int  `json:"completion_percent"`
		CanPublish        bool `json:"can_publish"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !payload.CanPublish {
		t.Fatalf("draft with category, name, description and image must be publishable")
	}
	if payload.CompletionPercent <= 0 || payload.CompletionPercent > 100 {
		t.Fatalf("completion percent out of range: %d", payload.CompletionPercent)
	}
}
