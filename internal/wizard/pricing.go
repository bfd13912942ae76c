package wizard

import "github.com/spec-kit/bursa-register/internal/domain"

// Bound names the price range end being edited.
type Bound int

const (
	BoundMin Bound = iota
	BoundMax
)

// SnapPriceRange applies a new value to one bound and returns the resulting
// range. Raising min above max pulls max up; dropping max below min pulls min down.
func SnapPriceRange(changed Bound, value, other domain.PriceTier) (min, max domain.PriceTier) {
	if changed == BoundMin {
		if value.Rank() > other.Rank() {
			return value, value
		}
		return value, other
	}
	if value.Rank() < other.Rank() {
		return value, value
	}
	return other, value
}
