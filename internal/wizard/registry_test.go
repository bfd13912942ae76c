package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bursa-register/internal/domain"
)

func TestRegistry_SweepDiscardsIdleWizards(t *testing.T) {
	h := newHarness()
	clock := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	reg := NewRegistry(30 * time.Minute)
	reg.now = func() time.Time { return clock }

	stale, err := Start(context.Background(), h.deps(), Options{ID: "stale", Variant: domain.VariantRich})
	require.NoError(t, err)
	fresh, err := Start(context.Background(), h.deps(), Options{ID: "fresh", Variant: domain.VariantRich})
	require.NoError(t, err)
	reg.Put(stale)
	reg.Put(fresh)

	clock = clock.Add(20 * time.Minute)
	_, ok := reg.Get("fresh")
	require.True(t, ok)

	clock = clock.Add(15 * time.Minute)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())

	_, ok = reg.Get("stale")
	assert.False(t, ok)
	assert.Equal(t, PhaseDiscarded, stale.Snapshot().Phase)
	assert.Equal(t, PhaseEditing, fresh.Snapshot().Phase)
}

func TestRegistry_Remove(t *testing.T) {
	w := newHarness().start(t)
	reg := NewRegistry(0)
	reg.Put(w)

	reg.Remove(w.ID())
	assert.Zero(t, reg.Len())
	assert.Equal(t, PhaseDiscarded, w.Snapshot().Phase)
	assert.Zero(t, reg.Sweep())
}

func TestRegistry_RemoveWhere(t *testing.T) {
	h := newHarness()
	reg := NewRegistry(time.Hour)
	for _, id := range []string{"a", "b"} {
		w, err := Start(context.Background(), h.deps(), Options{ID: id, Variant: domain.VariantRich})
		require.NoError(t, err)
		reg.Put(w)
	}

	removed := reg.RemoveWhere(func(w *Wizard) bool { return w.ID() == "a" })
	assert.Equal(t, 1, removed)
	_, ok := reg.Get("b")
	assert.True(t, ok)
}
