// Package frontend provides decision providers for the effect interpreter
// that do not need a connected client.
package frontend

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"go.uber.org/zap"
)

// Auto answers every decision deterministically: it pays from colors in
// declaration order, prefers the biggest color, and otherwise takes the
// first legal option. It never picks a card whose effect is already
// running to run again.
type Auto struct {
	logger *zap.Logger
}

var _ effects.Frontend = (*Auto)(nil)

// NewAuto creates an Auto frontend.
func NewAuto(logger *zap.Logger) *Auto {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auto{logger: logger}
}

func (a *Auto) ResolveSpend(ec *effects.ExecContext, filter resources.Filter, amount int) (resources.Pool, error) {
	held := ec.Player.Resources()
	spend := resources.NewPool()
	need := amount
	for _, c := range category.Colors() {
		if need <= 0 {
			break
		}
		if !filter.Allows(c) {
			continue
		}
		take := min(held.Get(c), need)
		spend.Add(c, take)
		need -= take
	}
	if need > 0 {
		a.logger.Debug("auto: cannot pay",
			zap.Int("amount", amount),
			zap.Stringer("colors", filter),
			zap.Stringer("held", held),
		)
		return nil, nil
	}
	return spend, nil
}

func (a *Auto) ChooseForeachColor(ec *effects.ExecContext) (category.Category, error) {
	return biggestColor(ec.Player), nil
}

func (a *Auto) ChooseFromDiscard(ec *effects.ExecContext, target effects.Player, filter category.Filter) (effects.Card, error) {
	for _, c := range target.DiscardPile() {
		if filter.Allows(c.Kind()) {
			return c, nil
		}
	}
	return nil, nil
}

func (a *Auto) ChooseCardToExecute(ec *effects.ExecContext, times int, discardAfter bool) (effects.Card, error) {
	for _, c := range ec.Player.PlacedCards() {
		if c.ID() == ec.Card.ID() || ec.Executing(c) || !c.IsDynExecutable() {
			continue
		}
		return c, nil
	}
	return nil, nil
}

func (a *Auto) ChooseColorToExecute(ec *effects.ExecContext, amount int) (category.Category, error) {
	return biggestColor(ec.Player), nil
}

func (a *Auto) ChooseExcludedColor(ec *effects.ExecContext, tied []category.Category) (category.Category, error) {
	if len(tied) == 0 {
		return category.None, nil
	}
	return tied[0], nil
}

func (a *Auto) ChooseCardToMove(ec *effects.ExecContext, adjacencies ruleset.Adjacencies) (effects.Card, error) {
	for _, c := range ec.Player.PlacedCards() {
		if c.IsStartingCard() || len(adjacencies.Of(c.Area())) == 0 {
			continue
		}
		return c, nil
	}
	return nil, nil
}

func (a *Auto) ChooseMoveDestination(ec *effects.ExecContext, card effects.Card, candidates []category.Category) (category.Category, error) {
	if len(candidates) == 0 {
		return category.None, nil
	}
	return candidates[0], nil
}

// biggestColor returns the color the player holds most cards in, the first
// in declaration order on ties.
func biggestColor(p effects.Player) category.Category {
	best := category.None
	bestCount := -1
	for _, c := range category.Colors() {
		if n := p.CountCardsOfType(c); n > bestCount {
			best, bestCount = c, n
		}
	}
	return best
}
