package wizard

import "github.com/spec-kit/bursa-register/internal/domain"

// ProjectPayload builds the submission body from a draft. Location fields are
// dropped for online businesses and blank optional fields are omitted.
func ProjectPayload(variant domain.Variant, draft domain.DraftSubmission) domain.SubmissionPayload {
	payload := domain.SubmissionPayload{
		Name:            draft.Name,
		Description:     draft.Description,
		OwnerName:       draft.OwnerName,
		CategorySlug:    draft.CategorySlug,
		PhoneNumber:     draft.PhoneNumber,
		WhatsappNumber:  optional(draft.WhatsappNumber),
		Website:         optional(draft.Website),
		InstagramHandle: optional(draft.InstagramHandle),
		TiktokHandle:    optional(draft.TiktokHandle),
		FacebookURL:     optional(draft.FacebookURL),
		LogoURL:         optional(draft.LogoURL),
	}

	if variant.PriceRange {
		payload.PriceRangeMin = draft.PriceRangeMin
		payload.PriceRangeMax = draft.PriceRangeMax
	}
	if variant.BusinessSize {
		payload.BusinessSize = draft.BusinessSize
	}
	if variant.OperatingHours {
		hours := draft.OperatingHours
		payload.OperatingHours = &hours
	}

	online := variant.OnlineBusiness && draft.IsOnlineBusiness
	if variant.OnlineBusiness {
		payload.IsOnlineBusiness = &online
	}
	if !online {
		payload.Address = optional(draft.Address)
		payload.City = optional(draft.City)
		payload.District = optional(draft.District)
		payload.PostalCode = optional(draft.PostalCode)
		payload.Latitude = copyFloat(draft.Latitude)
		payload.Longitude = copyFloat(draft.Longitude)
	}

	if len(draft.Photos) > 0 {
		payload.Photos = append([]string(nil), draft.Photos...)
	}
	return payload
}

func optional(s string) string {
	if blank(s) {
		return ""
	}
	return s
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
