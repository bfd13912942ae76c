package domain

// PriceTier is an ordered price bucket.
type PriceTier string

const (
	PriceBudget   PriceTier = "BUDGET"
	PriceModerate PriceTier = "MODERATE"
	PricePricey   PriceTier = "PRICEY"
	PricePremium  PriceTier = "PREMIUM"
)

// PriceTierInfo describes a tier for pickers.
type PriceTierInfo struct {
	Value PriceTier `json:"value"`
	Label string    `json:"label"`
	Name  string    `json:"name"`
}

// PriceTiers lists tiers in ascending rank.
var PriceTiers = []PriceTierInfo{
	{Value: PriceBudget, Label: "$", Name: "Murah"},
	{Value: PriceModerate, Label: "$$", Name: "Sedang"},
	{Value: PricePricey, Label: "$$$", Name: "Mahal"},
	{Value: PricePremium, Label: "$$$$", Name: "Premium"},
}

// Rank returns the tier position, or -1 for an unknown tier.
func (p PriceTier) Rank() int {
	for i, t := range PriceTiers {
		if t.Value == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the known tiers.
func (p PriceTier) Valid() bool {
	return p.Rank() >= 0
}

// BusinessSize classifies a business in the simple variant. It has no ordering.
type BusinessSize string

const (
	BusinessSizeMicro  BusinessSize = "MICRO"
	BusinessSizeSmall  BusinessSize = "SMALL"
	BusinessSizeMedium BusinessSize = "MEDIUM"
)

// Valid reports whether s is a known size.
func (s BusinessSize) Valid() bool {
	switch s {
	case BusinessSizeMicro, BusinessSizeSmall, BusinessSizeMedium:
		return true
	}
	return false
}
