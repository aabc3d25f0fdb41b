// Package effects interprets card rules: trees of immutable effect,
// condition and measure nodes evaluated against live match state.
package effects

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

// Result is the outcome of executing an effect. It is separate from the
// error return, which is reserved for fatal invariant violations and
// frontend transport failures.
type Result int

const (
	// Done means the effect ran to completion.
	Done Result = iota
	// CantExec means the effect was declined or its precondition was unmet.
	CantExec
)

func (r Result) String() string {
	switch r {
	case Done:
		return "DONE"
	case CantExec:
		return "CANT_EXEC"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Failed reports whether the result is CantExec.
func (r Result) Failed() bool {
	return r == CantExec
}

// Effect is a node of an effect tree. The set of implementations is closed
// to this package. Effects are values: they are built once when a card is
// authored and executed any number of times without being mutated.
type Effect interface {
	Execute(ec *ExecContext) (Result, error)
	isEffect()
}

// Execute runs a card's own effect with the given player as the actor.
// Every call builds a fresh ExecContext.
func Execute(ctx context.Context, card Card, player Player) (Result, error) {
	if card == nil {
		return CantExec, fmt.Errorf("%w: Execute: no acting card", ErrInvariant)
	}
	return Run(ctx, card.Effect(), card, player)
}

// Run executes an arbitrary effect tree on behalf of card and player.
func Run(ctx context.Context, effect Effect, card Card, player Player) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return CantExec, err
	}
	if effect == nil {
		return Done, nil
	}
	if card == nil || player == nil {
		return CantExec, invariantf(effect, "no acting card or player")
	}

	ec := NewExecContext(withActive(ctx, card), card, player)
	logger := ec.Logger()

	res, err := effect.Execute(ec)
	if err != nil {
		logger.Error("effect execution aborted",
			zap.String("card_id", card.ID()),
			zap.String("card", card.Name()),
			zap.Int("player", player.Index()),
			zap.String("effect", nameOf(effect)),
			zap.Error(err),
		)
		return res, err
	}

	logger.Debug("executed card effect",
		zap.String("card_id", card.ID()),
		zap.String("card", card.Name()),
		zap.Int("player", player.Index()),
		zap.String("effect", nameOf(effect)),
		zap.Stringer("result", res),
	)
	return res, nil
}

// Equal reports structural equality of two effect trees. Identity is
// irrelevant: two cards authored with the same rules compare equal.
func Equal(a, b Effect) bool {
	return reflect.DeepEqual(a, b)
}

func nameOf(v any) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", v), "effects.")
}

// execChild runs a child effect, treating a missing child as a no-op.
func execChild(ec *ExecContext, child Effect) (Result, error) {
	if child == nil {
		return Done, nil
	}
	return child.Execute(ec)
}
