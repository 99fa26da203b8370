package handlers

import (
	"errors"
	"net/http"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/rules"
	listingsvc "github.com/ivankudzin/svcmarket/internal/services/listings"
	userssvc "github.com/ivankudzin/svcmarket/internal/services/users"
	"github.com/ivankudzin/svcmarket/internal/transport/http/dto"
	httperrors "github.com/ivankudzin/svcmarket/internal/transport/http/errors"
)

type ListingsHandler struct {
	service *listingsvc.Service
	users   *userssvc.Service
}

func NewListingsHandler(service *listingsvc.Service, users *userssvc.Service) *ListingsHandler {
	return &ListingsHandler{service: service, users: users}
}

func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	listings, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list listings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ListingsResponse{Listings: listings})
}

func (h *ListingsHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	views, err := h.service.ListActive(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list active listings")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ListingViewsResponse{Listings: views})
}

func (h *ListingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

// GetPublic also counts the view: public reads are the impression signal.
func (h *ListingsHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

func (h *ListingsHandler) get(w http.ResponseWriter, r *http.Request, countView bool) {
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	listingID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	view, err := h.service.Get(r.Context(), listingID, countView)
	if err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ListingViewResponse{Listing: view})
}

func (h *ListingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	listingID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	var req dto.ListingPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	listing, err := h.service.Patch(r.Context(), listingID, patchFromRequest(req))
	if err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ListingResponse{Listing: listing})
}

func (h *ListingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	listingID, ok := pathID(r, "id")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid listing id")
		return
	}

	if err := h.service.Delete(r.Context(), listingID); err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.OKResponse{OK: true})
}

// Preview reports draft progress without persisting anything. The wizard
// calls it after every section change.
func (h *ListingsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.ListingDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	preview := listingsvc.Preview(draftFromRequest(req))
	httperrors.Write(w, http.StatusOK, dto.DraftPreviewResponse{
		CompletionPercent: preview.CompletionPercent,
		CanPublish:        preview.CanPublish,
	})
}

func (h *ListingsHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || h.users == nil {
		writeInternal(w, "LISTINGS_SERVICE_UNAVAILABLE", "listings service is unavailable")
		return
	}

	ownerID, ok := pathID(r, "userID")
	if !ok {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	var req dto.ListingDraftRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	owner, err := h.users.Get(r.Context(), ownerID)
	if err != nil {
		handleUsersError(w, err)
		return
	}

	listing, err := h.service.Publish(r.Context(), owner, draftFromRequest(req))
	if err != nil {
		handleListingsError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.ListingResponse{Listing: listing})
}

func patchFromRequest(req dto.ListingPatchRequest) listingsvc.Patch {
	patch := listingsvc.Patch{
		Title:        req.Title,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		PriceText:    req.PriceText,
		Locations:    req.Locations,
		Tags:         req.Tags,
		Hashtags:     req.Hashtags,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
	}
	if req.PriceType != nil {
		priceType := enums.PriceType(*req.PriceType)
		patch.PriceType = &priceType
	}
	if req.PriceUnit != nil {
		priceUnit := enums.PriceUnit(*req.PriceUnit)
		patch.PriceUnit = &priceUnit
	}
	if req.Status != nil {
		status := enums.ListingStatus(*req.Status)
		patch.Status = &status
	}
	return patch
}

func draftFromRequest(req dto.ListingDraftRequest) rules.ListingDraft {
	return rules.ListingDraft{
		CategorySlug: req.CategorySlug,
		ServiceName:  req.ServiceName,
		Description:  req.Description,
		Images:       req.Images,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Credentials:  req.Credentials,
		Locations:    rules.SplitList(req.Locations),
		Pricing: rules.DraftPricing{
			Mode:    req.Pricing.Mode,
			Rate:    req.Pricing.Rate,
			Unit:    req.Pricing.Unit,
			Options: req.Pricing.Options,
		},
	}
}

func handleListingsError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, listingsvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, listingsvc.ErrListingNotFound):
		writeNotFound(w, "NOT_FOUND", "listing not found")
	case errors.Is(err, listingsvc.ErrCategoryNotFound):
		writeBadRequest(w, "VALIDATION_ERROR", "unknown category")
	case errors.Is(err, listingsvc.ErrCannotPublish):
		writeBadRequest(w, "VALIDATION_ERROR", "listing draft is not publishable")
	case errors.Is(err, listingsvc.ErrTooManyImages):
		writeBadRequest(w, "VALIDATION_ERROR", "image limit exceeded")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
