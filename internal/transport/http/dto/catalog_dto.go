package dto

import "github.com/ivankudzin/svcmarket/internal/domain/model"

type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

type CategoryResponse struct {
	Category model.Category `json:"category"`
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon,omitempty"`
}

type CategoryPatchRequest struct {
	Name *string `json:"name,omitempty"`
	Slug *string `json:"slug,omitempty"`
	Icon *string `json:"icon,omitempty"`
}

type SuggestionsResponse struct {
	Suggestions []model.SubmittedCategory `json:"suggestions"`
}

type SuggestionResponse struct {
	Suggestion model.SubmittedCategory `json:"suggestion"`
}

type SuggestionCreateRequest struct {
	Name        string `json:"name"`
	SubmitterID *int64 `json:"submitter_id,omitempty"`
}

type SuggestionDecideRequest struct {
	Approve bool `json:"approve"`
}
