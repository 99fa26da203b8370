package handlers

import (
	"net/http"

	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}
