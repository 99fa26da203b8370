package handlers

import (
	"errors"
	"net/http"

	adminauthsvc "github.com/ivankudzin/svcmarket/internal/services/adminauth"
	assistantsvc "github.com/ivankudzin/svcmarket/internal/services/assistant"
	ratesvc "github.com/ivankudzin/svcmarket/internal/services/rate"
	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type AssistantHandler struct {
	service *assistantsvc.Service
	limiter *ratesvc.Limiter
}

func NewAssistantHandler(service *assistantsvc.Service, limiter *ratesvc.Limiter) *AssistantHandler {
	return &AssistantHandler{service: service, limiter: limiter}
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "ASSISTANT_SERVICE_UNAVAILABLE", "assistant service is unavailable")
		return
	}

	identity, ok := adminauthsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.AllowAssist(r.Context(), identity.AdminID)
		if err != nil {
			writeInternal(w, "INTERNAL_ERROR", "rate limit check failed")
			return
		}
		if !allowed {
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "RATE_LIMITED",
				Message:       "too many assistant requests",
				RetryAfterSec: retryAfter,
			})
			return
		}
	}

	var req dto.AssistantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	history := make([]assistantsvc.Message, 0, len(req.ConversationHistory))
	for _, msg := range req.ConversationHistory {
		history = append(history, assistantsvc.Message{Role: msg.Role, Content: msg.Content})
	}

	reply, err := h.service.Ask(r.Context(), assistantsvc.Input{
		Query:   req.Query,
		History: history,
	})
	if err != nil {
		handleAssistantError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.AssistantResponse{Response: reply})
}

func handleAssistantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assistantsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "query must not be empty")
	case errors.Is(err, assistantsvc.ErrUnavailable):
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "ASSISTANT_NOT_CONFIGURED",
			Message: "assistant is not configured",
		})
	case errors.Is(err, assistantsvc.ErrUpstream):
		httperrors.Write(w, http.StatusBadGateway, httperrors.APIError{
			Code:    "ASSISTANT_UPSTREAM_ERROR",
			Message: "assistant provider request failed",
		})
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
