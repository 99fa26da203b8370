package handlers

import (
	"errors"
	"net/http"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
	planssvc "github.com/ivankudzin/svcmarket/internal/services/plans"
	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type PlansHandler struct {
	service *planssvc.Service
}

func NewPlansHandler(service *planssvc.Service) *PlansHandler {
	return &PlansHandler{service: service}
}

func (h *PlansHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLANS_SERVICE_UNAVAILABLE", "plans service is unavailable")
		return
	}

	plans, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list plans")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PlansResponse{Plans: plans})
}

// ListPublic returns active plans only, for the upgrade screen.
func (h *PlansHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLANS_SERVICE_UNAVAILABLE", "plans service is unavailable")
		return
	}

	plans, err := h.service.ListActive(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list plans")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PlansResponse{Plans: plans})
}

func (h *PlansHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLANS_SERVICE_UNAVAILABLE", "plans service is unavailable")
		return
	}

	planID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid plan id")
		return
	}

	plan, err := h.service.Get(r.Context(), planID)
	if err != nil {
		handlePlansError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PlanResponse{Plan: plan})
}

func (h *PlansHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLANS_SERVICE_UNAVAILABLE", "plans service is unavailable")
		return
	}

	var req dto.PlanCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	plan, err := h.service.Create(r.Context(), model.Plan{
		Name:                req.Name,
		PriceCents:          req.PriceCents,
		MaxImages:           req.MaxImages,
		ListingDurationDays: req.ListingDurationDays,
		SortOrder:           req.SortOrder,
		CanRenew:            req.CanRenew,
		FeaturedListing:     req.FeaturedListing,
		PrioritySupport:     req.PrioritySupport,
		AnalyticsAccess:     req.AnalyticsAccess,
		CustomBranding:      req.CustomBranding,
		IsActive:            req.IsActive,
	})
	if err != nil {
		handlePlansError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.PlanResponse{Plan: plan})
}

func (h *PlansHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLANS_SERVICE_UNAVAILABLE", "plans service is unavailable")
		return
	}

	planID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid plan id")
		return
	}

	var req dto.PlanPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	plan, err := h.service.Patch(r.Context(), planID, planssvc.Patch{
		Name:                req.Name,
		PriceCents:          req.PriceCents,
		MaxImages:           req.MaxImages,
		ListingDurationDays: req.ListingDurationDays,
		SortOrder:           req.SortOrder,
		CanRenew:            req.CanRenew,
		FeaturedListing:     req.FeaturedListing,
		PrioritySupport:     req.PrioritySupport,
		AnalyticsAccess:     req.AnalyticsAccess,
		CustomBranding:      req.CustomBranding,
		IsActive:            req.IsActive,
	})
	if err != nil {
		handlePlansError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PlanResponse{Plan: plan})
}

func (h *PlansHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLANS_SERVICE_UNAVAILABLE", "plans service is unavailable")
		return
	}

	planID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid plan id")
		return
	}

	if err := h.service.Delete(r.Context(), planID); err != nil {
		handlePlansError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func handlePlansError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, planssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, planssvc.ErrPlanNotFound):
		writeNotFound(w, "NOT_FOUND", "plan not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
