package wizard

import (
	"fmt"

	"github.com/spec-kit/bursa-register/internal/domain"
)

// Coordinates is a map pin. Both values are always set together.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DraftPatch is a field change. Nil fields are left untouched.
type DraftPatch struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	OwnerName    *string `json:"ownerName,omitempty"`
	CategorySlug *string `json:"categorySlug,omitempty"`

	PriceRangeMin *domain.PriceTier    `json:"priceRangeMin,omitempty"`
	PriceRangeMax *domain.PriceTier    `json:"priceRangeMax,omitempty"`
	BusinessSize  *domain.BusinessSize `json:"businessSize,omitempty"`

	IsOnlineBusiness *bool `json:"isOnlineBusiness,omitempty"`

	Address     *string      `json:"address,omitempty"`
	City        *string      `json:"city,omitempty"`
	District    *string      `json:"district,omitempty"`
	PostalCode  *string      `json:"postalCode,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	// ClearCoordinates removes the map pin.
	ClearCoordinates bool `json:"clearCoordinates,omitempty"`

	PhoneNumber    *string `json:"phoneNumber,omitempty"`
	WhatsappNumber *string `json:"whatsappNumber,omitempty"`
	Website        *string `json:"website,omitempty"`

	OperatingHours map[domain.Weekday]DayHoursPatch `json:"operatingHours,omitempty"`

	InstagramHandle *string `json:"instagramHandle,omitempty"`
	TiktokHandle    *string `json:"tiktokHandle,omitempty"`
	FacebookURL     *string `json:"facebookUrl,omitempty"`
}

// DayHoursPatch changes one day. Nil fields keep their current value.
type DayHoursPatch struct {
	Open   *string `json:"open,omitempty"`
	Close  *string `json:"close,omitempty"`
	Closed *bool   `json:"closed,omitempty"`
}

const msgClockFormat = "Format jam harus HH:MM"

// FieldError rejects a patch value before anything is merged.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

func (p DraftPatch) check(variant domain.Variant) error {
	unsupported := func(field string) error {
		return &FieldError{Field: field, Reason: "not available", Err: ErrFieldUnsupported}
	}
	if p.PriceRangeMin != nil || p.PriceRangeMax != nil {
		if !variant.PriceRange {
			return unsupported("priceRange")
		}
		if p.PriceRangeMin != nil && !p.PriceRangeMin.Valid() {
			return &FieldError{Field: "priceRangeMin", Reason: "unknown price tier"}
		}
		if p.PriceRangeMax != nil && !p.PriceRangeMax.Valid() {
			return &FieldError{Field: "priceRangeMax", Reason: "unknown price tier"}
		}
	}
	if p.BusinessSize != nil {
		if !variant.BusinessSize {
			return unsupported("businessSize")
		}
		if !p.BusinessSize.Valid() {
			return &FieldError{Field: "businessSize", Reason: "unknown business size"}
		}
	}
	if p.ClearCoordinates && p.Coordinates != nil {
		return &FieldError{Field: "coordinates", Reason: "cannot set and clear coordinates together"}
	}
	if p.IsOnlineBusiness != nil && !variant.OnlineBusiness {
		return unsupported("isOnlineBusiness")
	}
	if len(p.OperatingHours) > 0 {
		if !variant.OperatingHours {
			return unsupported("operatingHours")
		}
		var week domain.OperatingHours
		for day, hours := range p.OperatingHours {
			if week.Day(day) == nil {
				return &FieldError{Field: "operatingHours", Reason: fmt.Sprintf("unknown day %q", day)}
			}
			if hours.Open != nil && !domain.ValidClock(*hours.Open) {
				return &FieldError{Field: fmt.Sprintf("operatingHours.%s.open", day), Reason: msgClockFormat}
			}
			if hours.Close != nil && !domain.ValidClock(*hours.Close) {
				return &FieldError{Field: fmt.Sprintf("operatingHours.%s.close", day), Reason: msgClockFormat}
			}
		}
	}
	return nil
}

// merge writes the patch into draft. check must have passed.
func (p DraftPatch) merge(draft *domain.DraftSubmission) {
	setString(&draft.Name, p.Name)
	setString(&draft.Description, p.Description)
	setString(&draft.OwnerName, p.OwnerName)
	setString(&draft.CategorySlug, p.CategorySlug)

	if p.PriceRangeMin != nil {
		draft.PriceRangeMin, draft.PriceRangeMax = SnapPriceRange(BoundMin, *p.PriceRangeMin, draft.PriceRangeMax)
	}
	if p.PriceRangeMax != nil {
		draft.PriceRangeMin, draft.PriceRangeMax = SnapPriceRange(BoundMax, *p.PriceRangeMax, draft.PriceRangeMin)
	}
	if p.BusinessSize != nil {
		draft.BusinessSize = *p.BusinessSize
	}
	if p.IsOnlineBusiness != nil {
		draft.IsOnlineBusiness = *p.IsOnlineBusiness
	}

	setString(&draft.Address, p.Address)
	setString(&draft.City, p.City)
	setString(&draft.District, p.District)
	setString(&draft.PostalCode, p.PostalCode)
	switch {
	case p.Coordinates != nil:
		lat, lng := p.Coordinates.Latitude, p.Coordinates.Longitude
		draft.Latitude, draft.Longitude = &lat, &lng
	case p.ClearCoordinates:
		draft.Latitude, draft.Longitude = nil, nil
	}

	setString(&draft.PhoneNumber, p.PhoneNumber)
	setString(&draft.WhatsappNumber, p.WhatsappNumber)
	setString(&draft.Website, p.Website)

	for day, hours := range p.OperatingHours {
		current := draft.OperatingHours.Day(day)
		setString(&current.Open, hours.Open)
		setString(&current.Close, hours.Close)
		if hours.Closed != nil {
			current.Closed = *hours.Closed
		}
	}

	setString(&draft.InstagramHandle, p.InstagramHandle)
	setString(&draft.TiktokHandle, p.TiktokHandle)
	setString(&draft.FacebookURL, p.FacebookURL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
