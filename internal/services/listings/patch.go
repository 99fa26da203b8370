package listings

import (
	"strings"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
	"github.com/ivankudzin/svcmarket/internal/domain/rules"
)

// Patch carries the admin-editable listing fields. Nil pointers mean "leave
// as is". Array fields arrive as comma-joined strings straight from the edit
// form and are split server-side.
type Patch struct {
	Title        *string
	Description  *string
	CategoryID   *int64
	PriceType    *enums.PriceType
	Price        *int64
	PriceText    *string
	PriceUnit    *enums.PriceUnit
	Locations    *string
	Tags         *string
	Hashtags     *string
	ContactPhone *string
	ContactEmail *string
	Status       *enums.ListingStatus
}

func (p Patch) validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrValidation
	}
	if p.CategoryID != nil && *p.CategoryID <= 0 {
		return ErrValidation
	}
	if p.Price != nil && *p.Price < 0 {
		return ErrValidation
	}
	if p.PriceType != nil {
		switch *p.PriceType {
		case enums.PriceTypeFixed, enums.PriceTypeList, enums.PriceTypeText:
		default:
			return ErrValidation
		}
	}
	if p.PriceUnit != nil {
		switch *p.PriceUnit {
		case enums.PriceUnitHour, enums.PriceUnitJob, enums.PriceUnitConsultation, enums.PriceUnitDay, enums.PriceUnitMonth:
		default:
			return ErrValidation
		}
	}
	if p.Status != nil {
		switch *p.Status {
		case enums.ListingStatusDraft, enums.ListingStatusActive, enums.ListingStatusPaused, enums.ListingStatusExpired:
		default:
			return ErrValidation
		}
	}
	return nil
}

// Diff returns the column set a patch would change on the given listing. A
// field appears in the result only when its requested value differs from the
// stored one, so an untouched edit form produces an empty diff.
func Diff(current model.Listing, patch Patch) map[string]any {
	diff := map[string]any{}

	if patch.Title != nil && *patch.Title != current.Title {
		diff["title"] = *patch.Title
	}
	if patch.Description != nil && *patch.Description != current.Description {
		diff["description"] = *patch.Description
	}
	if patch.CategoryID != nil && *patch.CategoryID != current.CategoryID {
		diff["category_id"] = *patch.CategoryID
	}
	if patch.PriceType != nil && *patch.PriceType != current.PriceType {
		diff["price_type"] = *patch.PriceType
	}
	if patch.Price != nil && (current.Price == nil || *current.Price != *patch.Price) {
		diff["price"] = *patch.Price
	}
	if patch.PriceText != nil && *patch.PriceText != current.PriceText {
		diff["price_text"] = *patch.PriceText
	}
	if patch.PriceUnit != nil && *patch.PriceUnit != current.PriceUnit {
		diff["price_unit"] = *patch.PriceUnit
	}
	if patch.Locations != nil {
		if values := rules.SplitList(*patch.Locations); !equalStrings(values, current.Locations) {
			diff["locations"] = values
		}
	}
	if patch.Tags != nil {
		if values := rules.SplitList(*patch.Tags); !equalStrings(values, current.Tags) {
			diff["tags"] = values
		}
	}
	if patch.Hashtags != nil {
		if values := rules.SplitList(*patch.Hashtags); !equalStrings(values, current.Hashtags) {
			diff["hashtags"] = values
		}
	}
	if patch.ContactPhone != nil && *patch.ContactPhone != current.ContactPhone {
		diff["contact_phone"] = *patch.ContactPhone
	}
	if patch.ContactEmail != nil && *patch.ContactEmail != current.ContactEmail {
		diff["contact_email"] = *patch.ContactEmail
	}
	if patch.Status != nil && *patch.Status != current.Status {
		diff["status"] = *patch.Status
	}

	return diff
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
