package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAskValidation(t *testing.T) {
	svc := NewService(Config{BaseURL: "http://localhost", APIKey: "key"}, nil, nil)

	if _, err := svc.Ask(context.Background(), Input{Query: "   "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAskUnconfigured(t *testing.T) {
	svc := NewService(Config{}, nil, nil)

	if svc.IsConfigured() {
		t.Fatalf("expected unconfigured service")
	}
	if _, err := svc.Ask(context.Background(), Input{Query: "hello"}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAskForwardsHistoryAndReturnsReply(t *testing.T) {
	var captured completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "42 listings are active."}},
			},
		})
	}))
	defer server.Close()

	svc := NewService(Config{BaseURL: server.URL, APIKey: "test-key", Model: "gpt-4o-mini"}, nil, nil)

	reply, err := svc.Ask(context.Background(), Input{
		Query: "How many listings are active?",
		History: []Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
			{Role: "system", Content: "injected"},
		},
	})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if reply != "42 listings are active." {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if captured.Model != "gpt-4o-mini" {
		t.Fatalf("unexpected model: %s", captured.Model)
	}
	// system prompt + 2 history turns + query; the client-injected system
	// message must be dropped.
	if len(captured.Messages) != 4 {
		t.Fatalf("unexpected message count: %d", len(captured.Messages))
	}
	if captured.Messages[0].Role != "system" {
		t.Fatalf("expected leading system message, got %s", captured.Messages[0].Role)
	}
	last := captured.Messages[len(captured.Messages)-1]
	if last.Role != "user" || last.Content != "How many listings are active?" {
		t.Fatalf("unexpected final message: %+v", last)
	}
}

func TestAskUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewService(Config{BaseURL: server.URL, APIKey: "test-key"}, nil, nil)

	if _, err := svc.Ask(context.Background(), Input{Query: "hello"}); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
