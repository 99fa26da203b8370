package handlers

import (
	"errors"
	"net/http"

	catalogsvc "github.com/ivankudzin/svcmarket/internal/services/catalog"
	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type CatalogHandler struct {
	service *catalogsvc.Service
}

func NewCatalogHandler(service *catalogsvc.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list categories")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CategoriesResponse{Categories: categories})
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	var req dto.CategoryCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.service.CreateCategory(r.Context(), req.Name, req.Slug, req.Icon)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.CategoryResponse{Category: category})
}

func (h *CatalogHandler) PatchCategory(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	categoryID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid category id")
		return
	}

	var req dto.CategoryPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.service.PatchCategory(r.Context(), categoryID, catalogsvc.CategoryPatch{
		Name: req.Name,
		Slug: req.Slug,
		Icon: req.Icon,
	})
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CategoryResponse{Category: category})
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	categoryID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid category id")
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		handleCatalogError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

func (h *CatalogHandler) ListSuggestions(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	suggestions, err := h.service.ListSuggestions(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list suggestions")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SuggestionsResponse{Suggestions: suggestions})
}

func (h *CatalogHandler) SubmitSuggestion(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	var req dto.SuggestionCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	suggestion, err := h.service.SubmitSuggestion(r.Context(), req.Name, req.SubmitterID)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.SuggestionResponse{Suggestion: suggestion})
}

func (h *CatalogHandler) DecideSuggestion(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "CATALOG_SERVICE_UNAVAILABLE", "catalog service is unavailable")
		return
	}

	suggestionID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid suggestion id")
		return
	}

	var req dto.SuggestionDecideRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	suggestion, err := h.service.DecideSuggestion(r.Context(), suggestionID, req.Approve)
	if err != nil {
		handleCatalogError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SuggestionResponse{Suggestion: suggestion})
}

func handleCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalogsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, catalogsvc.ErrCategoryNotFound):
		writeNotFound(w, "NOT_FOUND", "category not found")
	case errors.Is(err, catalogsvc.ErrSuggestionNotFound):
		writeNotFound(w, "NOT_FOUND", "suggestion not found")
	case errors.Is(err, catalogsvc.ErrSuggestionDecided):
		writeConflict(w, "ALREADY_DECIDED", "suggestion is already decided")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
