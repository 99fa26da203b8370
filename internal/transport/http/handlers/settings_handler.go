package handlers

import (
	"errors"
	"net/http"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
	settingsvc "github.com/ivankudzin/svcmarket/internal/services/settings"
	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type SettingsHandler struct {
	service *settingsvc.Service
}

func NewSettingsHandler(service *settingsvc.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	settings, err := h.service.Get(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to load settings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SettingsResponse{Settings: settings})
}

func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	var req dto.SettingsSaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	settings, err := h.service.Overwrite(r.Context(), model.Settings{
		RequireEmailVerification: req.RequireEmailVerification,
		RequirePhoneVerification: req.RequirePhoneVerification,
		ModerateNewListings:      req.ModerateNewListings,
		ServiceFeePercent:        req.ServiceFeePercent,
		FeaturedFeePercent:       req.FeaturedFeePercent,
	})
	if err != nil {
		handleSettingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SettingsResponse{Settings: settings})
}

func (h *SettingsHandler) SaveAPIKey(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	var req dto.APIKeySaveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.SetCredential(r.Context(), req.Name, req.Value); err != nil {
		handleSettingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *SettingsHandler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	names, err := h.service.CredentialNames(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list api keys")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.APIKeysResponse{Names: names})
}

func (h *SettingsHandler) EnvStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "SETTINGS_SERVICE_UNAVAILABLE", "settings service is unavailable")
		return
	}

	vars, err := h.service.EnvStatus(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to resolve env status")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.EnvStatusResponse{Vars: vars})
}

func handleSettingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, settingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
