package listings

import (
	"reflect"
	"testing"

	"github.com/ivankudzin/svcmarket/internal/domain/enums"
	"github.com/ivankudzin/svcmarket/internal/domain/model"
)

func strPtr(v string) *string                          { return &v }
func int64Ptr(v int64) *int64                          { return &v }
func statusPtr(v enums.ListingStatus) *enums.ListingStatus { return &v }
func unitPtr(v enums.PriceUnit) *enums.PriceUnit           { return &v }

func sampleListing() model.Listing {
	price := int64(5000)
	return model.Listing{
		ID:           10,
		Title:        "Plumbing",
		Description:  "Pipes and drains",
		CategoryID:   3,
		PriceType:    enums.PriceTypeFixed,
		Price:        &price,
		PriceUnit:    enums.PriceUnitHour,
		Locations:    []string{"Riga", "Jurmala"},
		Tags:         []string{"plumbing"},
		ContactPhone: "+371 20000000",
		Status:       enums.ListingStatusActive,
	}
}

func TestDiffContainsOnlyChangedFields(t *testing.T) {
	current := sampleListing()

	tests := []struct {
		name  string
		patch Patch
		want  map[string]any
	}{
		{
			name:  "empty patch",
			patch: Patch{},
			want:  map[string]any{},
		},
		{
			name: "unchanged values produce no diff",
			patch: Patch{
				Title:        strPtr("Plumbing"),
				CategoryID:   int64Ptr(3),
				Price:        int64Ptr(5000),
				Locations:    strPtr("Riga, Jurmala"),
				ContactPhone: strPtr("+371 20000000"),
			},
			want: map[string]any{},
		},
		{
			name:  "status only edit",
			patch: Patch{Status: statusPtr(enums.ListingStatusPaused)},
			want:  map[string]any{"status": enums.ListingStatusPaused},
		},
		{
			name:  "title change",
			patch: Patch{Title: strPtr("Plumbing & heating")},
			want:  map[string]any{"title": "Plumbing & heating"},
		},
		{
			name:  "locations reorder counts as change",
			patch: Patch{Locations: strPtr("Jurmala, Riga")},
			want:  map[string]any{"locations": []string{"Jurmala", "Riga"}},
		},
		{
			name:  "messy comma string normalizes before comparing",
			patch: Patch{Locations: strPtr(" Riga ,, Jurmala ")},
			want:  map[string]any{},
		},
		{
			name:  "price change",
			patch: Patch{Price: int64Ptr(6500)},
			want:  map[string]any{"price": int64(6500)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(current, tt.patch)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("unexpected diff: got %v want %v", got, tt.want)
			}
		})
	}
}

func TestPatchValidate(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		ok    bool
	}{
		{name: "empty patch is fine", patch: Patch{}, ok: true},
		{name: "blank title", patch: Patch{Title: strPtr("   ")}, ok: false},
		{name: "bad category", patch: Patch{CategoryID: int64Ptr(0)}, ok: false},
		{name: "negative price", patch: Patch{Price: int64Ptr(-1)}, ok: false},
		{name: "unknown status", patch: Patch{Status: statusPtr("archived")}, ok: false},
		{name: "valid status", patch: Patch{Status: statusPtr(enums.ListingStatusDraft)}, ok: true},
		{name: "unknown price unit", patch: Patch{PriceUnit: unitPtr("century")}, ok: false},
		{name: "valid price unit", patch: Patch{PriceUnit: unitPtr(enums.PriceUnitHour)}, ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
