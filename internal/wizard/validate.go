package wizard

import (
	"strings"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// ValidationError is the single reason a step failed validation.
type ValidationError struct {
	Step   Step   `json:"step"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateStep checks the rules of step against draft and returns the first
// failure, or nil. StepMedia re-runs every earlier step before its own rules.
func ValidateStep(variant domain.Variant, step Step, draft domain.DraftSubmission) *ValidationError {
	fail := func(field, reason string) *ValidationError {
		return &ValidationError{Step: step, Field: field, Reason: reason}
	}

	switch step {
	case StepIdentity:
		switch {
		case blank(draft.Name):
			return fail("name", "Nama bisnis wajib diisi")
		case blank(draft.Description):
			return fail("description", "Deskripsi wajib diisi")
		case blank(draft.OwnerName):
			return fail("ownerName", "Nama pemilik wajib diisi")
		case draft.CategorySlug == "":
			return fail("categorySlug", "Kategori wajib dipilih")
		case !domain.IsKnownCategory(draft.CategorySlug):
			return fail("categorySlug", "Kategori tidak valid")
		}
		if variant.PriceRange {
			if !draft.PriceRangeMin.Valid() || !draft.PriceRangeMax.Valid() ||
				draft.PriceRangeMin.Rank() > draft.PriceRangeMax.Rank() {
				return fail("priceRange", "Rentang harga tidak valid")
			}
		}
		if variant.BusinessSize && !draft.BusinessSize.Valid() {
			return fail("businessSize", "Ukuran bisnis wajib dipilih")
		}
	case StepLocation:
		if variant.OnlineBusiness && draft.IsOnlineBusiness {
			return nil
		}
		switch {
		case blank(draft.Address):
			return fail("address", "Alamat wajib diisi")
		case blank(draft.City):
			return fail("city", "Kota wajib diisi")
		case draft.Latitude == nil || draft.Longitude == nil:
			return fail("location", "Lokasi di peta wajib dipilih")
		}
	case StepContact:
		if blank(draft.PhoneNumber) {
			return fail("phoneNumber", "Nomor telepon wajib diisi")
		}
	case StepMedia:
		for s := StepIdentity; s < StepMedia; s++ {
			if err := ValidateStep(variant, s, draft); err != nil {
				return err
			}
		}
		if len(draft.Photos) > domain.MaxPhotos {
			return fail("photos", maxPhotosReason())
		}
	}
	return nil
}
