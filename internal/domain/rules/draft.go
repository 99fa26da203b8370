package rules

import (
	"math"
	"strings"

	"github.com/ivankudzin/svcmarket/internal/domain/model"
)

// ListingDraft mirrors the create-listing form: three independent sections
// accumulated into one payload before publishing.
type ListingDraft struct {
	CategorySlug string
	ServiceName  string
	Description  string
	Images       []string
	ContactPhone string
	ContactEmail string
	Credentials  string
	Locations    []string
	Pricing      DraftPricing
}

// DraftPricing is a tagged choice: fixed carries a single rate, list carries
// named options, request carries no numeric data at all.
type DraftPricing struct {
	Mode    string
	Rate    int64
	Unit    string
	Options []model.PriceOption
}

const (
	PricingModeFixed   = "fixed"
	PricingModeList    = "list"
	PricingModeRequest = "request"
)

// CompletionPercent counts how many of the 8 tracked draft fields are
// populated and rounds to the nearest percent. Cosmetic only: it never
// gates publishing.
func CompletionPercent(d ListingDraft) int {
	criteria := []bool{
		strings.TrimSpace(d.CategorySlug) != "",
		strings.TrimSpace(d.ServiceName) != "",
		strings.TrimSpace(d.Description) != "",
		len(d.Images) > 0,
		strings.TrimSpace(d.ContactPhone) != "" || strings.TrimSpace(d.ContactEmail) != "",
		strings.TrimSpace(d.Credentials) != "",
		len(d.Locations) > 0,
		PricingComplete(d.Pricing),
	}

	filled := 0
	for _, ok := range criteria {
		if ok {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(criteria)) * 100))
}

// CanPublish requires category, name, description and at least one image,
// independent of the completion percentage.
func CanPublish(d ListingDraft) bool {
	return strings.TrimSpace(d.CategorySlug) != "" &&
		strings.TrimSpace(d.ServiceName) != "" &&
		strings.TrimSpace(d.Description) != "" &&
		len(d.Images) > 0
}

func PricingComplete(p DraftPricing) bool {
	switch p.Mode {
	case PricingModeFixed:
		return p.Rate > 0
	case PricingModeList:
		for _, opt := range p.Options {
			if strings.TrimSpace(opt.Name) != "" && opt.Price > 0 {
				return true
			}
		}
		return false
	case PricingModeRequest:
		return true
	default:
		return false
	}
}

// SplitList turns a comma-joined form value into a trimmed list with empty
// entries dropped.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
