package handlers

import (
	"errors"
	"net/http"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	pgrepo "github.com/ivankudzin/svcmarket/internal/repo/postgres"
	adminauthsvc "github.com/ivankudzin/svcmarket/internal/services/adminauth"
	modsvc "github.com/ivankudzin/svcmarket/internal/services/moderation"
	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type ModerationHandler struct {
	service *modsvc.Service
}

func NewModerationHandler(service *modsvc.Service) *ModerationHandler {
	return &ModerationHandler{service: service}
}

func (h *ModerationHandler) Moderate(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	userID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.ModerateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	var adminID *int64
	if identity, ok := adminauthsvc.IdentityFromContext(r.Context()); ok {
		adminID = &identity.AdminID
	}

	result, err := h.service.Moderate(r.Context(), modsvc.ModerateInput{
		UserID:  userID,
		Action:  enums.ModerationAction(req.Action),
		Reason:  req.Reason,
		AdminID: adminID,
		IP:      req.IP,
		Phone:   req.Phone,
	})
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ModerateResponse{
		User:   result.User,
		Record: result.Record,
	})
}

func (h *ModerationHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	userID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	records, err := h.service.History(r.Context(), userID)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ModerationHistoryResponse{Records: records})
}

func (h *ModerationHandler) ListBanned(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	identifiers, err := h.service.ListBannedIdentifiers(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list banned identifiers")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BannedIdentifiersResponse{Identifiers: identifiers})
}

func (h *ModerationHandler) AddBanned(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	var req dto.BannedIdentifierRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	identifier, err := h.service.AddBannedIdentifier(
		r.Context(),
		enums.IdentifierType(req.IdentifierType),
		req.IdentifierValue,
		req.Reason,
	)
	if err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.BannedIdentifierResponse{Identifier: identifier})
}

func (h *ModerationHandler) RemoveBanned(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "MODERATION_SERVICE_UNAVAILABLE", "moderation service is unavailable")
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid identifier id")
		return
	}

	if err := h.service.RemoveBannedIdentifier(r.Context(), id); err != nil {
		handleModerationError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handleModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, modsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, modsvc.ErrUserNotFound):
		writeNotFound(w, "NOT_FOUND", "user not found")
	case errors.Is(err, pgrepo.ErrBannedIdentifierNotFound):
		writeNotFound(w, "NOT_FOUND", "banned identifier not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
