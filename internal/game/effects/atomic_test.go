package effects_test

import (
	"testing"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pool(entries map[category.Category]int) resources.Pool {
	p := resources.NewPool()
	for c, n := range entries {
		p.Add(c, n)
	}
	return p
}

func TestNullEffect(t *testing.T) {
	h := newHarness(t, 1)
	res, err := h.run(effects.NullEffect{})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
}

func TestGainResource(t *testing.T) {
	h := newHarness(t, 1)
	res, err := h.run(gain(category.Red, 2))
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 2, h.p(0).Resources().Get(category.Red))
}

func TestGainResource_NegativeAmountLowersHoldings(t *testing.T) {
	h := newHarness(t, 1)
	h.p(0).Resources().Add(category.Red, 3)

	res, err := h.run(gain(category.Red, -2))
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 1, h.p(0).Resources().Get(category.Red))
}

func TestSpendResource(t *testing.T) {
	spend := effects.SpendResource{Colors: resources.NotYellow(), Amount: 2}

	t.Run("accepted partition is deducted", func(t *testing.T) {
		h := newHarness(t, 1, pool(map[category.Category]int{category.Red: 1, category.Blue: 1}))
		h.p(0).Resources().Add(category.Red, 2)
		h.p(0).Resources().Add(category.Blue, 1)

		res, err := h.run(spend)
		require.NoError(t, err)
		assert.Equal(t, effects.Done, res)
		assert.Equal(t, 1, h.p(0).Resources().Get(category.Red))
		assert.Equal(t, 0, h.p(0).Resources().Get(category.Blue))

		calls := h.fe.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, 2, calls[0].Amount)
		assert.False(t, calls[0].Filter.Allows(category.Yellow))
	})

	t.Run("declined spend is CantExec", func(t *testing.T) {
		h := newHarness(t, 1, nil)
		h.p(0).Resources().Add(category.Red, 2)

		res, err := h.run(spend)
		require.NoError(t, err)
		assert.Equal(t, effects.CantExec, res)
		assert.Equal(t, 2, h.p(0).Resources().Get(category.Red))
	})

	invalid := []struct {
		name   string
		answer resources.Pool
	}{
		{"wrong total", pool(map[category.Category]int{category.Red: 1})},
		{"exceeds holdings", pool(map[category.Category]int{category.Green: 2})},
		{"disallowed color", pool(map[category.Category]int{category.Yellow: 1, category.Red: 1})},
	}
	for _, tt := range invalid {
		t.Run(tt.name+" is fatal", func(t *testing.T) {
			h := newHarness(t, 1, tt.answer)
			h.p(0).Resources().Add(category.Red, 2)
			h.p(0).Resources().Add(category.Yellow, 2)

			_, err := h.run(spend)
			assert.ErrorIs(t, err, effects.ErrInvariant)
			assert.Equal(t, 2, h.p(0).Resources().Get(category.Red))
			assert.Equal(t, 2, h.p(0).Resources().Get(category.Yellow))
		})
	}

	t.Run("frontend failure aborts", func(t *testing.T) {
		h := newHarness(t, 1)
		_, err := h.run(spend)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, effects.ErrInvariant)
	})
}

// AddMarker ignores its Amount and always adds exactly one marker. This
// pins the shipped behavior; a change needs sign-off from the rules owner.
func TestAddMarker_IgnoresAmount(t *testing.T) {
	h := newHarness(t, 1)

	res, err := h.run(effects.AddMarker{Amount: 3})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 1, h.source.Markers(), "AddMarker{Amount: 3} adds a single marker")

	_, err = h.run(effects.AddMarker{Amount: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, h.source.Markers())
}

func TestRemoveMarker(t *testing.T) {
	h := newHarness(t, 1)
	h.source.SetMarkers(3)

	res, err := h.run(effects.RemoveMarker{Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 1, h.source.Markers())

	res, err = h.run(effects.RemoveMarker{Amount: 2})
	require.NoError(t, err)
	assert.Equal(t, effects.CantExec, res)
	assert.Equal(t, 1, h.source.Markers(), "a failed removal leaves markers untouched")
}

func TestDiscardThis(t *testing.T) {
	h := newHarness(t, 1)
	card := h.place(0, "Flicker", category.Red, nil)

	res, err := h.runOn(card, effects.DiscardThis{})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, category.Discard, card.Area())
	assert.Equal(t, 1, h.p(0).CountCardsOfType(category.Discard))
	assert.Equal(t, 0, h.p(0).CountCardsOfType(category.Red))
}
