package effects

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
)

// Frontend resolves player decisions. Every method blocks until the
// decision is known. A returned error is a transport failure and aborts
// the evaluation; declining is expressed through the zero value of the
// decision (nil pool, nil card or category.None).
type Frontend interface {
	// ResolveSpend picks exactly amount units of the acting player's
	// resources, using only colors the filter allows. nil declines.
	ResolveSpend(ec *ExecContext, filter resources.Filter, amount int) (resources.Pool, error)

	// ChooseForeachColor picks the area a ForEachDynChosenColor counts.
	ChooseForeachColor(ec *ExecContext) (category.Category, error)

	// ChooseFromDiscard picks a card allowed by filter from target's
	// discard pile. nil declines.
	ChooseFromDiscard(ec *ExecContext, target Player, filter category.Filter) (Card, error)

	// ChooseCardToExecute picks one of the acting player's placed cards to
	// run times times, discarding it afterwards when discardAfter is set.
	ChooseCardToExecute(ec *ExecContext, times int, discardAfter bool) (Card, error)

	// ChooseColorToExecute picks the color run amount times.
	ChooseColorToExecute(ec *ExecContext, amount int) (category.Category, error)

	// ChooseExcludedColor breaks a tie for the biggest color.
	ChooseExcludedColor(ec *ExecContext, tied []category.Category) (category.Category, error)

	// ChooseCardToMove picks a placed card to move. nil declines.
	ChooseCardToMove(ec *ExecContext, adjacencies ruleset.Adjacencies) (Card, error)

	// ChooseMoveDestination picks one of candidates. category.None declines.
	ChooseMoveDestination(ec *ExecContext, card Card, candidates []category.Category) (category.Category, error)
}
