package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bursa-register/internal/domain"
)

func completeDraft(variant domain.Variant) domain.DraftSubmission {
	lat, lng := -6.2, 106.8
	draft := variant.NewDraft("Budi")
	draft.Name = "Kopi Budi"
	draft.Description = "Kopi susu gula aren"
	draft.CategorySlug = "food-beverage"
	draft.Address = "Jl. Sudirman 10"
	draft.City = "Jakarta"
	draft.Latitude, draft.Longitude = &lat, &lng
	draft.PhoneNumber = "0812000111"
	return draft
}

func TestValidateStep_FirstFailureWins(t *testing.T) {
	draft := domain.VariantRich.NewDraft("")
	verr := ValidateStep(domain.VariantRich, StepIdentity, draft)
	require.NotNil(t, verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, "Nama bisnis wajib diisi", verr.Reason)

	draft.Name = "Kopi Budi"
	draft.Description = "Kopi"
	draft.OwnerName = "Budi"
	verr = ValidateStep(domain.VariantRich, StepIdentity, draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Kategori wajib dipilih", verr.Reason)
}

func TestValidateStep_CompleteDraftPassesEveryStep(t *testing.T) {
	for _, variant := range []domain.Variant{domain.VariantRich, domain.VariantSimple} {
		draft := completeDraft(variant)
		for step := StepIdentity; step <= StepMedia; step++ {
			assert.Nil(t, ValidateStep(variant, step, draft), "%s %s", variant.Name, step)
		}
	}
}

func TestValidateStep_OnlineBusinessSkipsLocationRules(t *testing.T) {
	draft := completeDraft(domain.VariantRich)
	draft.Address, draft.City = "", ""
	draft.Latitude, draft.Longitude = nil, nil
	require.NotNil(t, ValidateStep(domain.VariantRich, StepLocation, draft))

	draft.IsOnlineBusiness = true
	assert.Nil(t, ValidateStep(domain.VariantRich, StepLocation, draft))
	assert.Nil(t, ValidateStep(domain.VariantRich, StepMedia, draft))

	// The simple flow has no online toggle, so the flag is ignored.
	assert.NotNil(t, ValidateStep(domain.VariantSimple, StepLocation, draft))
}

func TestValidateStep_MediaRechecksEarlierSteps(t *testing.T) {
	draft := completeDraft(domain.VariantRich)
	draft.PhoneNumber = " "
	verr := ValidateStep(domain.VariantRich, StepMedia, draft)
	require.NotNil(t, verr)
	assert.Equal(t, StepContact, verr.Step)
	assert.Equal(t, "Nomor telepon wajib diisi", verr.Reason)
}

func TestValidateStep_PhotoCap(t *testing.T) {
	draft := completeDraft(domain.VariantRich)
	draft.Photos = []string{"a", "b", "c", "d", "e", "f"}
	verr := ValidateStep(domain.VariantRich, StepMedia, draft)
	require.NotNil(t, verr)
	assert.Equal(t, "Maksimal 5 foto", verr.Reason)
}

func TestValidateStep_VariantRules(t *testing.T) {
	rich := completeDraft(domain.VariantRich)
	rich.PriceRangeMin, rich.PriceRangeMax = domain.PricePremium, domain.PriceBudget
	verr := ValidateStep(domain.VariantRich, StepIdentity, rich)
	require.NotNil(t, verr)
	assert.Equal(t, "Rentang harga tidak valid", verr.Reason)

	simple := completeDraft(domain.VariantSimple)
	simple.BusinessSize = ""
	verr = ValidateStep(domain.VariantSimple, StepIdentity, simple)
	require.NotNil(t, verr)
	assert.Equal(t, "Ukuran bisnis wajib dipilih", verr.Reason)
}
