package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
)

var (
	ErrValidation  = errors.New("invalid assistant input")
	ErrUpstream    = errors.New("completion provider request failed")
	ErrUnavailable = errors.New("assistant is not configured")
)

type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Service proxies admin chat queries to an external completion API. The
// transcript lives in the caller: every request carries the full history
// and nothing is stored server-side.
type Service struct {
	client *resty.Client
	stats  *pgrepo.StatsRepo
	model  string
	log    *zap.Logger
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Input struct {
	Query   string
	History []Message
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewService(cfg Config, stats *pgrepo.StatsRepo, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	var client *resty.Client
	if strings.TrimSpace(cfg.BaseURL) != "" && strings.TrimSpace(cfg.APIKey) != "" {
		client = resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetAuthToken(cfg.APIKey).
			SetRetryCount(0)
	}

	return &Service{
		client: client,
		stats:  stats,
		model:  cfg.Model,
		log:    log,
	}
}

func (s *Service) IsConfigured() bool {
	return s != nil && s.client != nil
}

// Ask forwards one query with its client-held history to the completion API
// and returns the reply text. A fresh platform stats snapshot is injected as
// the system message so the model answers about current marketplace state.
func (s *Service) Ask(ctx context.Context, in Input) (string, error) {
	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		return "", ErrValidation
	}
	if !s.IsConfigured() {
		return "", ErrUnavailable
	}

	messages := make([]Message, 0, len(in.History)+2)
	messages = append(messages, Message{Role: "system", Content: s.systemPrompt(ctx)})
	for _, msg := range in.History {
		role := strings.TrimSpace(msg.Role)
		if role != "user" && role != "assistant" {
			continue
		}
		messages = append(messages, Message{Role: role, Content: msg.Content})
	}
	messages = append(messages, Message{Role: "user", Content: in.Query})

	var result completionResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(completionRequest{Model: s.model, Messages: messages}).
		SetResult(&result).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() != http.StatusOK {
		s.log.Warn("completion provider returned non-200",
			zap.Int("status", resp.StatusCode()),
			zap.ByteString("body", resp.Body()))
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode())
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUpstream)
	}

	return result.Choices[0].Message.Content, nil
}

func (s *Service) systemPrompt(ctx context.Context) string {
	prompt := "You are the admin assistant for a services marketplace back office. " +
		"Answer questions about moderation, listings, categories, plans and settings concisely."

	if s.stats == nil {
		return prompt
	}

	snapshot, err := s.stats.Snapshot(ctx)
	if err != nil {
		s.log.Warn("platform stats snapshot failed", zap.Error(err))
		return prompt
	}

	return prompt + fmt.Sprintf(
		" Current platform stats: %d users (%d active), %d listings (%d active), %d pending category suggestions, %d banned identifiers.",
		snapshot.TotalUsers, snapshot.ActiveUsers,
		snapshot.TotalListings, snapshot.ActiveListings,
		snapshot.PendingSuggestions, snapshot.BannedIdentifiers,
	)
}
