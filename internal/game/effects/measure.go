package effects

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
)

// Measure computes a quantity from the execution context without side
// effects.
type Measure interface {
	Value(ec *ExecContext) int
	isMeasure()
}

// ConstMeasure is a fixed value.
type ConstMeasure struct {
	N int
}

func (ConstMeasure) isMeasure() {}

func (m ConstMeasure) Value(*ExecContext) int { return m.N }

// CardsOfType counts the acting player's cards in Area.
type CardsOfType struct {
	Area category.Category
}

func (CardsOfType) isMeasure() {}

func (m CardsOfType) Value(ec *ExecContext) int {
	return ec.Player.CountCardsOfType(m.Area)
}

// DiscardedCards is the size of the acting player's discard pile.
type DiscardedCards struct{}

func (DiscardedCards) isMeasure() {}

func (DiscardedCards) Value(ec *ExecContext) int {
	return ec.Player.CountCardsOfType(category.Discard)
}

// NumMarkers is the marker count of the executing card.
type NumMarkers struct{}

func (NumMarkers) isMeasure() {}

func (NumMarkers) Value(ec *ExecContext) int {
	return ec.Card.Markers()
}

// ResourceCount is how much of Resource the acting player holds.
type ResourceCount struct {
	Resource category.Category
}

func (ResourceCount) isMeasure() {}

func (m ResourceCount) Value(ec *ExecContext) int {
	return ec.Player.Resources().Get(m.Resource)
}
