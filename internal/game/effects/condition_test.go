package effects_test

import (
	"context"
	"testing"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/stretchr/testify/assert"
)

func c(n int) effects.Measure { return effects.ConstMeasure{N: n} }

func TestComparison(t *testing.T) {
	h := newHarness(t, 1)
	ec := effects.NewExecContext(context.Background(), h.source, h.p(0))

	tests := []struct {
		name string
		cond effects.Condition
		want bool
	}{
		{"1 < 2", effects.LessThan(c(1), c(2)), true},
		{"2 < 2", effects.LessThan(c(2), c(2)), false},
		{"2 <= 2", effects.LessEq(c(2), c(2)), true},
		{"3 <= 2", effects.LessEq(c(3), c(2)), false},
		{"3 > 2", effects.GreaterThan(c(3), c(2)), true},
		{"2 > 2", effects.GreaterThan(c(2), c(2)), false},
		{"3 >= 2", effects.GreaterEq(c(3), c(2)), true},
		{"1 >= 2", effects.GreaterEq(c(1), c(2)), false},
		{"2 == 2", effects.Equals(c(2), c(2)), true},
		{"2 == 3", effects.Equals(c(2), c(3)), false},
		{"2 != 3", effects.NotEquals(c(2), c(3)), true},
		{"2 != 2", effects.NotEquals(c(2), c(2)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Evaluate(ec))
		})
	}
}

// GreaterEq shares the strict comparator of GreaterThan, so equal operands
// compare false. This pins the shipped behavior until the rules owner
// decides whether cards written with ">=" meant it.
func TestGreaterEq_EqualOperandsAreFalse(t *testing.T) {
	h := newHarness(t, 1)
	ec := effects.NewExecContext(context.Background(), h.source, h.p(0))

	assert.False(t, effects.GreaterEq(c(2), c(2)).Evaluate(ec), "GreaterEq behaves as > for equal operands")
	assert.Equal(t, ">=", effects.OpGreaterEq.String())
}

func TestConditionalEffect_MalformedComparison(t *testing.T) {
	tests := []struct {
		name string
		cond effects.Comparison
	}{
		{"missing left", effects.Comparison{Op: effects.OpLess, Right: c(1)}},
		{"missing right", effects.Comparison{Op: effects.OpEqual, Left: c(1)}},
		{"unknown operator", effects.Comparison{Op: effects.Operator(99), Left: c(1), Right: c(2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 1)
			ec := effects.NewExecContext(context.Background(), h.source, h.p(0))
			assert.False(t, tt.cond.Evaluate(ec))

			_, err := h.run(effects.ConditionalEffect{Cond: tt.cond, IfTrue: gain(category.Red, 1), IfFalse: gain(category.Blue, 1)})
			assert.ErrorIs(t, err, effects.ErrInvariant)
			assert.Equal(t, 0, h.p(0).Resources().Total())
		})
	}
}

func TestComparison_EvaluatesMeasuresAtCheckTime(t *testing.T) {
	h := newHarness(t, 1)
	cond := effects.GreaterThan(effects.NumMarkers{}, c(1))
	branch := effects.ConditionalEffect{Cond: cond, IfTrue: gain(category.Red, 1)}

	_, err := h.run(branch)
	assert.NoError(t, err)
	assert.Equal(t, 0, h.p(0).Resources().Get(category.Red))

	h.source.SetMarkers(2)
	_, err = h.run(branch)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.p(0).Resources().Get(category.Red))
}

func TestMostCardsOfType(t *testing.T) {
	h := newHarness(t, 3)
	h.place(0, "r", category.Red, nil)
	h.place(0, "r", category.Red, nil)
	h.place(1, "r", category.Red, nil)
	h.place(1, "r", category.Red, nil)
	h.place(2, "r", category.Red, nil)

	strict := effects.MostCardsOfType{Area: category.Red}
	withTie := effects.MostCardsOfType{Area: category.Red, IncludeTie: true}

	for i := 0; i < 2; i++ {
		ec := effects.NewExecContext(context.Background(), h.source, h.p(i))
		assert.False(t, strict.Evaluate(ec), "tied leader %d loses without includeTie", i)
		assert.True(t, withTie.Evaluate(ec), "tied leader %d wins with includeTie", i)
	}

	ec := effects.NewExecContext(context.Background(), h.source, h.p(2))
	assert.False(t, strict.Evaluate(ec))
	assert.False(t, withTie.Evaluate(ec))

	h.place(0, "r", category.Red, nil)
	ec = effects.NewExecContext(context.Background(), h.source, h.p(0))
	assert.True(t, strict.Evaluate(ec))
}

func TestMeasures(t *testing.T) {
	h := newHarness(t, 1)
	h.place(0, "g", category.Green, nil)
	h.add(0, "d", category.Red, category.Discard, nil)
	h.add(0, "d", category.Red, category.Discard, nil)
	h.source.SetMarkers(4)
	h.p(0).Resources().Add(category.Blue, 5)
	ec := effects.NewExecContext(context.Background(), h.source, h.p(0))

	assert.Equal(t, 7, effects.ConstMeasure{N: 7}.Value(ec))
	assert.Equal(t, 1, effects.CardsOfType{Area: category.Green}.Value(ec))
	assert.Equal(t, 2, effects.DiscardedCards{}.Value(ec))
	assert.Equal(t, 4, effects.NumMarkers{}.Value(ec))
	assert.Equal(t, 5, effects.ResourceCount{Resource: category.Blue}.Value(ec))
	assert.Equal(t, 0, effects.ResourceCount{Resource: category.Red}.Value(ec))

	// Measures never change state.
	assert.Equal(t, 4, h.source.Markers())
	assert.Equal(t, 5, h.p(0).Resources().Get(category.Blue))
}
