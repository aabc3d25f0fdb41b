package effects

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"go.uber.org/zap"
)

// NullEffect does nothing.
type NullEffect struct{}

func (NullEffect) isEffect() {}

func (NullEffect) Execute(*ExecContext) (Result, error) {
	return Done, nil
}

// GainResource adds Amount of Resource to the acting player.
type GainResource struct {
	Resource category.Category
	Amount   int
}

func (GainResource) isEffect() {}

func (e GainResource) Execute(ec *ExecContext) (Result, error) {
	ec.Player.Resources().Add(e.Resource, e.Amount)
	return Done, nil
}

// SpendResource asks the frontend which Amount units to pay, restricted to
// Colors, and deducts them. A declined spend is CantExec.
type SpendResource struct {
	Colors resources.Filter
	Amount int
}

func (SpendResource) isEffect() {}

func (e SpendResource) Execute(ec *ExecContext) (Result, error) {
	spent, err := ec.Frontend().ResolveSpend(ec, e.Colors, e.Amount)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if spent == nil {
		ec.Logger().Debug("spend declined",
			zap.String("card_id", ec.Card.ID()),
			zap.Int("amount", e.Amount),
			zap.Stringer("colors", e.Colors),
		)
		return CantExec, nil
	}

	spent = spent.Positive()
	held := ec.Player.Resources()
	if !held.Contains(spent) {
		return CantExec, invariantf(e, "spend %s exceeds holdings %s", spent, held)
	}
	if spent.Total() != e.Amount {
		return CantExec, invariantf(e, "spend %s totals %d, want %d", spent, spent.Total(), e.Amount)
	}
	if !spent.OnlyAllowed(e.Colors) {
		return CantExec, invariantf(e, "spend %s uses colors outside %s", spent, e.Colors)
	}
	if err := held.Subtract(spent); err != nil {
		return CantExec, invariantf(e, "%v", err)
	}
	return Done, nil
}

// AddMarker puts a marker on the executing card.
//
// The increment is always exactly one; Amount is carried but not applied.
type AddMarker struct {
	Amount int
}

func (AddMarker) isEffect() {}

func (AddMarker) Execute(ec *ExecContext) (Result, error) {
	ec.Card.SetMarkers(ec.Card.Markers() + 1)
	return Done, nil
}

// RemoveMarker takes Amount markers off the executing card, or fails when
// there are not enough.
type RemoveMarker struct {
	Amount int
}

func (RemoveMarker) isEffect() {}

func (e RemoveMarker) Execute(ec *ExecContext) (Result, error) {
	markers := ec.Card.Markers()
	if markers < e.Amount {
		return CantExec, nil
	}
	ec.Card.SetMarkers(markers - e.Amount)
	return Done, nil
}

// DiscardThis moves the executing card to its holder's discard pile.
type DiscardThis struct{}

func (DiscardThis) isEffect() {}

func (e DiscardThis) Execute(ec *ExecContext) (Result, error) {
	if err := ec.Card.Discard(); err != nil {
		return CantExec, invariantf(e, "%v", err)
	}
	return Done, nil
}
