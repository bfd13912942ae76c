package domain

import "fmt"

// Variant selects the field set and submission cap of the registration flow.
type Variant struct {
	Name           string `json:"name"`
	MaxSubmissions int    `json:"maxSubmissions"`
	OnlineBusiness bool   `json:"onlineBusiness"`
	OperatingHours bool   `json:"operatingHours"`
	PriceRange     bool   `json:"priceRange"`
	BusinessSize   bool   `json:"businessSize"`
}

var (
	// VariantRich allows five businesses per account, online businesses,
	// operating hours and a price range.
	VariantRich = Variant{
		Name:           "rich",
		MaxSubmissions: 5,
		OnlineBusiness: true,
		OperatingHours: true,
		PriceRange:     true,
	}
	// VariantSimple allows one business per account classified by size.
	VariantSimple = Variant{
		Name:           "simple",
		MaxSubmissions: 1,
		BusinessSize:   true,
	}
)

// ParseVariant resolves a variant by name. An empty name selects VariantRich.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "", VariantRich.Name:
		return VariantRich, nil
	case VariantSimple.Name:
		return VariantSimple, nil
	}
	return Variant{}, fmt.Errorf("unknown wizard variant %q", name)
}

// NewDraft returns a draft seeded with the variant defaults.
func (v Variant) NewDraft(ownerName string) DraftSubmission {
	draft := DraftSubmission{OwnerName: ownerName, Photos: []string{}}
	if v.PriceRange {
		draft.PriceRangeMin = PriceModerate
		draft.PriceRangeMax = PriceModerate
	}
	if v.OperatingHours {
		draft.OperatingHours = DefaultOperatingHours()
	}
	if v.BusinessSize {
		draft.BusinessSize = BusinessSizeMicro
	}
	return draft
}
