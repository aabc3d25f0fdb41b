package effects

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
)

// repeat executes child n times. n is fixed by the caller before the first
// iteration, so state changes made by the child never alter the count, and
// a CantExec iteration does not end the loop. Only a fatal error does.
func repeat(ec *ExecContext, n int, child Effect) (Result, error) {
	for i := 0; i < n; i++ {
		if _, err := execChild(ec, child); err != nil {
			return CantExec, err
		}
	}
	return Done, nil
}

// ForEachMarker runs Effect once per marker on the executing card.
type ForEachMarker struct {
	Effect Effect
}

func (ForEachMarker) isEffect() {}

func (e ForEachMarker) Execute(ec *ExecContext) (Result, error) {
	return repeat(ec, ec.Card.Markers(), e.Effect)
}

// ForEachCardOfType runs Effect once per card the player holds in Area.
type ForEachCardOfType struct {
	Area   category.Category
	Effect Effect
}

func (ForEachCardOfType) isEffect() {}

func (e ForEachCardOfType) Execute(ec *ExecContext) (Result, error) {
	return repeat(ec, ec.Player.CountCardsOfType(e.Area), e.Effect)
}

// ForEachColorSet runs Effect once per full set of colors, i.e. the
// smallest count across the colors.
type ForEachColorSet struct {
	Effect Effect
}

func (ForEachColorSet) isEffect() {}

func (e ForEachColorSet) Execute(ec *ExecContext) (Result, error) {
	n := -1
	for _, c := range category.Colors() {
		count := ec.Player.CountCardsOfType(c)
		if n < 0 || count < n {
			n = count
		}
	}
	return repeat(ec, n, e.Effect)
}

// ForEachDiscard runs Effect once per card in the player's discard pile.
type ForEachDiscard struct {
	Effect Effect
}

func (ForEachDiscard) isEffect() {}

func (e ForEachDiscard) Execute(ec *ExecContext) (Result, error) {
	return repeat(ec, ec.Player.CountCardsOfType(category.Discard), e.Effect)
}

// ForEachPlacedMagic runs Effect once per card placed in a color area.
// Artifacts do not count.
type ForEachPlacedMagic struct {
	Effect Effect
}

func (ForEachPlacedMagic) isEffect() {}

func (e ForEachPlacedMagic) Execute(ec *ExecContext) (Result, error) {
	n := 0
	for _, c := range category.Colors() {
		n += ec.Player.CountCardsOfType(c)
	}
	return repeat(ec, n, e.Effect)
}

// ForEachEmptyColor runs Effect once per color with no cards.
type ForEachEmptyColor struct {
	Effect Effect
}

func (ForEachEmptyColor) isEffect() {}

func (e ForEachEmptyColor) Execute(ec *ExecContext) (Result, error) {
	n := 0
	for _, c := range category.Colors() {
		if ec.Player.CountCardsOfType(c) == 0 {
			n++
		}
	}
	return repeat(ec, n, e.Effect)
}

// ForEachDynChosenColor asks the frontend for an area when it starts and
// runs Effect once per card the player holds there.
type ForEachDynChosenColor struct {
	Effect Effect
}

func (ForEachDynChosenColor) isEffect() {}

func (e ForEachDynChosenColor) Execute(ec *ExecContext) (Result, error) {
	c, err := ec.Frontend().ChooseForeachColor(ec)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if c == category.None {
		return CantExec, nil
	}
	if !category.IsPlaceable(c) {
		return CantExec, invariantf(e, "chosen area %q is not placeable", c)
	}
	return repeat(ec, ec.Player.CountCardsOfType(c), e.Effect)
}

// ForEachM runs Effect as many times as Measure evaluates to when the loop
// starts.
type ForEachM struct {
	Measure Measure
	Effect  Effect
}

func (ForEachM) isEffect() {}

func (e ForEachM) Execute(ec *ExecContext) (Result, error) {
	if e.Measure == nil {
		return CantExec, invariantf(e, "no measure")
	}
	return repeat(ec, e.Measure.Value(ec), e.Effect)
}
