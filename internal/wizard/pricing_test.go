package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/bursa-register/internal/domain"
)

func TestSnapPriceRange(t *testing.T) {
	tests := []struct {
		name    string
		changed Bound
		value   domain.PriceTier
		other   domain.PriceTier
		wantMin domain.PriceTier
		wantMax domain.PriceTier
	}{
		{"min above max pulls max up", BoundMin, domain.PricePricey, domain.PriceModerate, domain.PricePricey, domain.PricePricey},
		{"min below max keeps max", BoundMin, domain.PriceBudget, domain.PriceModerate, domain.PriceBudget, domain.PriceModerate},
		{"min equal to max", BoundMin, domain.PriceModerate, domain.PriceModerate, domain.PriceModerate, domain.PriceModerate},
		{"max below min pulls min down", BoundMax, domain.PriceBudget, domain.PriceModerate, domain.PriceBudget, domain.PriceBudget},
		{"max above min keeps min", BoundMax, domain.PricePremium, domain.PriceModerate, domain.PriceModerate, domain.PricePremium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := SnapPriceRange(tt.changed, tt.value, tt.other)
			assert.Equal(t, tt.wantMin, gotMin)
			assert.Equal(t, tt.wantMax, gotMax)
			assert.LessOrEqual(t, gotMin.Rank(), gotMax.Rank())
		})
	}
}
