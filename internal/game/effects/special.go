package effects

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"go.uber.org/zap"
)

// ChooseFromDiscardOf takes a card from the discard pile of the player
// PlayerOffset seats away. Events are executed on the spot and land in the
// chooser's discard pile; anything else is placed in the chooser's area.
// An empty Filter defaults to the five colors.
type ChooseFromDiscardOf struct {
	PlayerOffset int
	Filter       category.Filter
}

func (ChooseFromDiscardOf) isEffect() {}

func (e ChooseFromDiscardOf) Execute(ec *ExecContext) (Result, error) {
	filter := e.Filter
	if filter.IsEmpty() {
		filter = category.AnyColor()
	}

	target := ec.Player.NeighborPlayer(e.PlayerOffset)
	pile := target.DiscardPile()
	if len(pile) == 0 {
		return CantExec, nil
	}

	card, err := ec.Frontend().ChooseFromDiscard(ec, target, filter)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if card == nil {
		return CantExec, nil
	}
	if !filter.Allows(card.Kind()) {
		return CantExec, invariantf(e, "card %s of kind %s is not allowed by %s", card.ID(), card.Kind(), filter)
	}
	if !containsCard(pile, card) {
		return CantExec, invariantf(e, "card %s is not in the discard pile of player %d", card.ID(), target.Index())
	}

	if card.Kind() == category.Event {
		// Events can't be placed, so they resolve immediately for the chooser.
		if _, err := Execute(ec.Context(), card, ec.Player); err != nil {
			return CantExec, err
		}
		if err := card.DiscardTo(ec.Player); err != nil {
			return CantExec, invariantf(e, "%v", err)
		}
		return Done, nil
	}
	if err := ec.Player.PlaceCard(card); err != nil {
		return CantExec, invariantf(e, "%v", err)
	}
	return Done, nil
}

// ExecOwnPlacedCard re-runs one of the player's own placed cards up to Times
// times, stopping once the card is no longer placed.
type ExecOwnPlacedCard struct {
	Times int
}

func (ExecOwnPlacedCard) isEffect() {}

func (e ExecOwnPlacedCard) Execute(ec *ExecContext) (Result, error) {
	card, err := ec.Frontend().ChooseCardToExecute(ec, e.Times, false)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if card == nil {
		return CantExec, nil
	}
	if !category.IsPlaceable(card.Area()) {
		return CantExec, invariantf(e, "card %s is in %s, not a placed area", card.ID(), card.Area())
	}
	if holder := card.Holder(); holder == nil || holder.Index() != ec.Player.Index() {
		return CantExec, invariantf(e, "card %s is not placed by player %d", card.ID(), ec.Player.Index())
	}
	return execPlacedTimes(ec, card, e.Times)
}

// ExecChosenColorNTimes runs a chosen color's action Amount times; every
// other color runs only its evergreen action, during the first
// EvergreenAmount rounds.
type ExecChosenColorNTimes struct {
	Amount          int
	EvergreenAmount int
}

func (ExecChosenColorNTimes) isEffect() {}

func (e ExecChosenColorNTimes) Execute(ec *ExecContext) (Result, error) {
	chosen, err := ec.Frontend().ChooseColorToExecute(ec, e.Amount)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	// Artifacts can't be executed and events are never placed.
	if !category.IsColor(chosen) {
		return CantExec, invariantf(e, "chosen %q is not a color", chosen)
	}

	ctx := ec.Context()
	for i := 0; i < e.Amount; i++ {
		for _, c := range category.Colors() {
			switch {
			case c == chosen:
				err = ec.Player.ExecuteColorAction(ctx, c)
			case i < e.EvergreenAmount:
				err = ec.Player.ExecuteColorEvergreenAction(ctx, c)
			default:
				continue
			}
			if err != nil {
				return CantExec, err
			}
		}
	}
	return Done, nil
}

// ExecColorsNotBiggest runs every color's action except the biggest one's,
// which runs only its evergreen action when DoEvergreens is set. The
// frontend breaks ties for the biggest color.
type ExecColorsNotBiggest struct {
	DoEvergreens bool
}

func (ExecColorsNotBiggest) isEffect() {}

func (e ExecColorsNotBiggest) Execute(ec *ExecContext) (Result, error) {
	maxCount := 0
	var top []category.Category
	for _, c := range category.Colors() {
		n := ec.Player.CountCardsOfType(c)
		switch {
		case n > maxCount:
			top = []category.Category{c}
			maxCount = n
		case n == maxCount:
			top = append(top, c)
		}
	}

	excluded := top[0]
	if len(top) > 1 {
		chosen, err := ec.Frontend().ChooseExcludedColor(ec, append([]category.Category(nil), top...))
		if err != nil {
			return CantExec, frontendErr(e, err)
		}
		if !containsCategory(top, chosen) {
			return CantExec, invariantf(e, "excluded %q is not among the tied colors %v", chosen, top)
		}
		excluded = chosen
	}

	ctx := ec.Context()
	for _, c := range category.Colors() {
		var err error
		switch {
		case c != excluded:
			err = ec.Player.ExecuteColorAction(ctx, c)
		case e.DoEvergreens:
			err = ec.Player.ExecuteColorEvergreenAction(ctx, c)
		}
		if err != nil {
			return CantExec, err
		}
	}
	return Done, nil
}

// ExecChosenNTimesAndDiscard runs a chosen card N times and then discards
// it. If the card stops being placed part way, the remaining runs and the
// discard are skipped.
type ExecChosenNTimesAndDiscard struct {
	N int
}

func (ExecChosenNTimesAndDiscard) isEffect() {}

func (e ExecChosenNTimesAndDiscard) Execute(ec *ExecContext) (Result, error) {
	card, err := ec.Frontend().ChooseCardToExecute(ec, e.N, true)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if card == nil {
		return CantExec, nil
	}
	if !card.IsDynExecutable() {
		return CantExec, invariantf(e, "card %s cannot be executed on demand", card.ID())
	}

	for i := 0; i < e.N; i++ {
		if !card.IsPlaced() {
			return Done, nil
		}
		if _, err := Execute(ec.Context(), card, ec.Player); err != nil {
			return CantExec, err
		}
	}
	if err := card.Discard(); err != nil {
		return CantExec, invariantf(e, "%v", err)
	}
	return Done, nil
}

// MoveChosenAndExecNewColor moves a chosen card to an adjacent color and
// runs that color's action. Adjacencies overrides the ruleset when set.
type MoveChosenAndExecNewColor struct {
	adjacencies ruleset.Adjacencies
}

// MoveChosen creates the effect. A nil table defers to the active ruleset;
// a non-nil table is copied so later changes to it are not observed.
func MoveChosen(adjacencies ruleset.Adjacencies) MoveChosenAndExecNewColor {
	return MoveChosenAndExecNewColor{adjacencies: adjacencies.Clone()}
}

func (MoveChosenAndExecNewColor) isEffect() {}

func (e MoveChosenAndExecNewColor) adjacenciesFor(ec *ExecContext) ruleset.Adjacencies {
	if e.adjacencies != nil {
		return e.adjacencies.Clone()
	}
	return ec.Ruleset().Adjacencies()
}

func (e MoveChosenAndExecNewColor) Execute(ec *ExecContext) (Result, error) {
	adj := e.adjacenciesFor(ec)

	card, err := ec.Frontend().ChooseCardToMove(ec, adj.Clone())
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if card == nil {
		return CantExec, nil
	}
	if card.IsStartingCard() {
		return CantExec, invariantf(e, "starting card %s cannot be moved", card.ID())
	}

	from := card.Area()
	if !category.IsPlaceable(from) {
		return CantExec, invariantf(e, "card %s is in %s, not a placed area", card.ID(), from)
	}
	candidates := adj.Of(from)
	dest, err := ec.Frontend().ChooseMoveDestination(ec, card, candidates)
	if err != nil {
		return CantExec, frontendErr(e, err)
	}
	if dest == category.None {
		return CantExec, nil
	}
	if !category.IsPlaceable(dest) || !containsCategory(candidates, dest) {
		return CantExec, invariantf(e, "destination %q is not adjacent to %s", dest, from)
	}

	if err := card.MoveToArea(dest); err != nil {
		return CantExec, invariantf(e, "%v", err)
	}
	ec.Logger().Debug("moved card",
		zap.String("card_id", card.ID()),
		zap.String("from", string(from)),
		zap.String("to", string(dest)),
	)
	if err := ec.Player.ExecuteColorAction(ec.Context(), dest); err != nil {
		return CantExec, err
	}
	return Done, nil
}

// execPlacedTimes runs card as the acting player up to n times while it
// stays placed.
func execPlacedTimes(ec *ExecContext, card Card, n int) (Result, error) {
	for i := 0; i < n; i++ {
		if !card.IsPlaced() {
			break
		}
		if _, err := Execute(ec.Context(), card, ec.Player); err != nil {
			return CantExec, err
		}
	}
	return Done, nil
}

func containsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c.ID() == card.ID() {
			return true
		}
	}
	return false
}

func containsCategory(list []category.Category, c category.Category) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}
