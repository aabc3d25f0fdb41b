package effects_test

import (
	"testing"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachM_ConstAddMarker(t *testing.T) {
	h := newHarness(t, 1)

	res, err := h.run(effects.ForEachM{Measure: effects.ConstMeasure{N: 3}, Effect: effects.AddMarker{Amount: 1}})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 3, h.source.Markers())
}

func TestForEachMarker_CountIsSnapshot(t *testing.T) {
	h := newHarness(t, 1)
	h.source.SetMarkers(2)

	// Each iteration adds a marker; the loop still runs only twice.
	res, err := h.run(effects.ForEachMarker{Effect: effects.Group(effects.AddMarker{Amount: 1}, gain(category.Purple, 1))})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 2, h.p(0).Resources().Get(category.Purple))
	assert.Equal(t, 4, h.source.Markers())
}

func TestForEachMarker_FailuresDoNotStopTheLoop(t *testing.T) {
	h := newHarness(t, 1)
	h.source.SetMarkers(3)

	// Removing two markers succeeds once, then fails; all three iterations
	// still run.
	body := effects.Group(effects.Strict(effects.RemoveMarker{Amount: 2}, gain(category.Red, 10)), gain(category.Blue, 1))
	res, err := h.run(effects.ForEachMarker{Effect: body})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 10, h.p(0).Resources().Get(category.Red))
	assert.Equal(t, 3, h.p(0).Resources().Get(category.Blue))
	assert.Equal(t, 1, h.source.Markers())
}

func TestForEachM_IgnoresChildResult(t *testing.T) {
	h := newHarness(t, 1)

	res, err := h.run(effects.ForEachM{Measure: effects.ConstMeasure{N: 2}, Effect: failing})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
}

func TestForEachDiscard_CountIsSnapshot(t *testing.T) {
	h := newHarness(t, 1)
	h.add(0, "Old", category.Red, category.Discard, nil)
	h.add(0, "Older", category.Blue, category.Discard, nil)
	flicker := h.place(0, "Flicker", category.Red, nil)

	// The body discards a card, growing the pile mid-loop.
	body := effects.Group(effects.DiscardThis{}, gain(category.Green, 1))
	res, err := h.runOn(flicker, effects.ForEachDiscard{Effect: body})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 2, h.p(0).Resources().Get(category.Green))
}

func TestForEachCounts(t *testing.T) {
	h := newHarness(t, 1)
	for _, c := range category.Colors() {
		h.place(0, "one", c, nil)
	}
	h.place(0, "two", category.Red, nil)
	h.place(0, "three", category.Red, nil)
	h.place(0, "relic", category.Artifact, nil)

	tests := []struct {
		name   string
		effect effects.Effect
		want   int
	}{
		{"card of type", effects.ForEachCardOfType{Area: category.Red, Effect: gain(category.Yellow, 1)}, 3},
		{"artifacts", effects.ForEachCardOfType{Area: category.Artifact, Effect: gain(category.Yellow, 1)}, 2},
		{"color set", effects.ForEachColorSet{Effect: gain(category.Yellow, 1)}, 1},
		{"placed magic skips artifacts", effects.ForEachPlacedMagic{Effect: gain(category.Yellow, 1)}, 7},
		{"empty colors", effects.ForEachEmptyColor{Effect: gain(category.Yellow, 1)}, 0},
		{"measure", effects.ForEachM{Measure: effects.CardsOfType{Area: category.Red}, Effect: gain(category.Yellow, 1)}, 3},
		{"negative measure", effects.ForEachM{Measure: effects.ConstMeasure{N: -2}, Effect: gain(category.Yellow, 1)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := h.p(0).Resources().Get(category.Yellow)
			res, err := h.run(tt.effect)
			require.NoError(t, err)
			assert.Equal(t, effects.Done, res)
			assert.Equal(t, tt.want, h.p(0).Resources().Get(category.Yellow)-before)
		})
	}
}

func TestForEachEmptyColor_CountsMissingColors(t *testing.T) {
	h := newHarness(t, 1)
	h.place(0, "r", category.Red, nil)
	h.place(0, "b", category.Blue, nil)

	_, err := h.run(effects.ForEachEmptyColor{Effect: gain(category.Yellow, 1)})
	require.NoError(t, err)
	assert.Equal(t, 3, h.p(0).Resources().Get(category.Yellow))

	_, err = h.run(effects.ForEachColorSet{Effect: gain(category.Green, 1)})
	require.NoError(t, err)
	assert.Equal(t, 0, h.p(0).Resources().Get(category.Green))
}

func TestForEachDynChosenColor(t *testing.T) {
	h := newHarness(t, 1, category.Blue)
	h.place(0, "b1", category.Blue, nil)
	h.place(0, "b2", category.Blue, nil)
	h.place(0, "r", category.Red, nil)

	res, err := h.run(effects.ForEachDynChosenColor{Effect: gain(category.Purple, 1)})
	require.NoError(t, err)
	assert.Equal(t, effects.Done, res)
	assert.Equal(t, 2, h.p(0).Resources().Get(category.Purple))
	assert.Equal(t, []string{"ChooseForeachColor"}, h.fe.Methods())
}

func TestForEachDynChosenColor_Declined(t *testing.T) {
	tests := []struct {
		name   string
		answer any
	}{
		{"no answer", nil},
		{"none", category.None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 1, []any{tt.answer}...)
			h.place(0, "b", category.Blue, nil)

			res, err := h.run(effects.ForEachDynChosenColor{Effect: gain(category.Purple, 1)})
			require.NoError(t, err)
			assert.Equal(t, effects.CantExec, res)
			assert.Equal(t, 0, h.p(0).Resources().Get(category.Purple))
		})
	}
}

func TestForEachDynChosenColor_RejectsUnplaceableArea(t *testing.T) {
	h := newHarness(t, 1, category.Discard)

	_, err := h.run(effects.ForEachDynChosenColor{Effect: gain(category.Purple, 1)})
	assert.ErrorIs(t, err, effects.ErrInvariant)
}

func TestForEachM_MissingMeasure(t *testing.T) {
	h := newHarness(t, 1)

	_, err := h.run(effects.ForEachM{Effect: gain(category.Purple, 1)})
	assert.ErrorIs(t, err, effects.ErrInvariant)
}
