package effects

import (
	"context"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"go.uber.org/zap"
)

// Card is the view of a card instance the interpreter needs.
type Card interface {
	ID() string
	Name() string
	Kind() category.Category
	Effect() Effect

	Markers() int
	SetMarkers(n int)

	// Area is the area the card currently sits in; Holder is the player
	// whose area that is.
	Area() category.Category
	Holder() Player
	IsPlaced() bool
	IsStartingCard() bool
	IsDynExecutable() bool

	Discard() error
	DiscardTo(player Player) error
	MoveToArea(area category.Category) error
}

// Player is the view of a seated player the interpreter needs.
type Player interface {
	Index() int
	Name() string
	Match() Match

	Resources() resources.Pool
	CountCardsOfType(area category.Category) int
	DiscardPile() []Card
	PlacedCards() []Card

	// NeighborPlayer returns the player offset seats away: +1 is next to
	// act, -1 the previous one, 0 this player.
	NeighborPlayer(offset int) Player
	PlaceCard(card Card) error

	ExecuteColorAction(ctx context.Context, color category.Category) error
	ExecuteColorEvergreenAction(ctx context.Context, color category.Category) error
}

// Match exposes the shared collaborators of a running game.
type Match interface {
	Players() []Player
	Frontend() Frontend
	Ruleset() Ruleset
	Logger() *zap.Logger
}

// Ruleset is the static rules data some effects consult.
type Ruleset interface {
	Adjacencies() ruleset.Adjacencies
}

// ExecContext bundles the acting card and player for one top-level
// execution. It must not outlive that execution.
type ExecContext struct {
	ctx    context.Context
	Card   Card
	Player Player
}

// NewExecContext creates the context for executing card as player.
func NewExecContext(ctx context.Context, card Card, player Player) *ExecContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ExecContext{ctx: ctx, Card: card, Player: player}
}

type activeKey struct{}

// activeCard links the cards whose effects are running, innermost first.
type activeCard struct {
	card   Card
	parent *activeCard
}

func withActive(ctx context.Context, card Card) context.Context {
	parent, _ := ctx.Value(activeKey{}).(*activeCard)
	return context.WithValue(ctx, activeKey{}, &activeCard{card: card, parent: parent})
}

// Executing reports whether card's effect is running in the chain of
// executions that led to ec.
func (ec *ExecContext) Executing(card Card) bool {
	if card == nil {
		return false
	}
	a, _ := ec.ctx.Value(activeKey{}).(*activeCard)
	for ; a != nil; a = a.parent {
		if a.card.ID() == card.ID() {
			return true
		}
	}
	return false
}

// Context returns the context of the top-level invocation. Frontends use
// it to bound how long they block waiting for a decision.
func (ec *ExecContext) Context() context.Context {
	return ec.ctx
}

// Match returns the match the acting player is seated in.
func (ec *ExecContext) Match() Match {
	return ec.Player.Match()
}

// Frontend returns the decision provider of the match.
func (ec *ExecContext) Frontend() Frontend {
	return ec.Match().Frontend()
}

// Ruleset returns the active ruleset.
func (ec *ExecContext) Ruleset() Ruleset {
	return ec.Match().Ruleset()
}

// Logger returns the match logger, or a no-op logger.
func (ec *ExecContext) Logger() *zap.Logger {
	if m := ec.Match(); m != nil {
		if l := m.Logger(); l != nil {
			return l
		}
	}
	return zap.NewNop()
}
