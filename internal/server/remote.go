package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/match"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"go.uber.org/zap"
)

// RemoteFrontend relays every decision to a connected client and blocks
// until the matching answer arrives or the decision times out.
type RemoteFrontend struct {
	conn    conn
	timeout time.Duration
	match   *match.Match
	logger  *zap.Logger
}

var _ effects.Frontend = (*RemoteFrontend)(nil)

func newRemoteFrontend(c conn, timeout time.Duration, logger *zap.Logger) *RemoteFrontend {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteFrontend{conn: c, timeout: timeout, logger: logger}
}

// bind sets the match whose cards answers refer to.
func (f *RemoteFrontend) bind(m *match.Match) { f.match = m }

func (f *RemoteFrontend) ask(ec *effects.ExecContext, req DecisionRequest) (*Answer, error) {
	req.Player = ec.Player.Index()
	req.CardID = ec.Card.ID()

	id := uuid.NewString()
	msg, err := newMessage(TypeDecision, id, req)
	if err != nil {
		return nil, err
	}
	if err := f.conn.send(msg); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Kind, err)
	}
	f.logger.Debug("decision requested", zap.String("decision_id", id), zap.String("kind", req.Kind))

	ctx, cancel := context.WithTimeout(ec.Context(), f.timeout)
	defer cancel()

	reply, err := f.conn.recv(ctx)
	if err != nil {
		return nil, fmt.Errorf("await %s: %w", req.Kind, err)
	}
	if reply.Type != TypeAnswer || reply.ID != id {
		return nil, fmt.Errorf("%w: expected answer %s, got %s %q", ErrProtocol, id, reply.Type, reply.ID)
	}

	var ans Answer
	if err := json.Unmarshal(reply.Data, &ans); err != nil {
		return nil, fmt.Errorf("%w: answer %s: %v", ErrProtocol, id, err)
	}
	f.logger.Debug("decision answered", zap.String("decision_id", id), zap.Bool("decline", ans.Decline))
	return &ans, nil
}

func (f *RemoteFrontend) askCategory(ec *effects.ExecContext, req DecisionRequest) (category.Category, error) {
	ans, err := f.ask(ec, req)
	if err != nil {
		return category.None, err
	}
	if ans.Decline || ans.Category == "" {
		return category.None, nil
	}
	c, err := category.Parse(ans.Category)
	if err != nil {
		return category.None, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return c, nil
}

func (f *RemoteFrontend) askCard(ec *effects.ExecContext, req DecisionRequest) (effects.Card, error) {
	ans, err := f.ask(ec, req)
	if err != nil {
		return nil, err
	}
	if ans.Decline || ans.CardID == "" {
		return nil, nil
	}
	card, err := f.match.FindCard(ans.CardID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
	}
	return card, nil
}

func (f *RemoteFrontend) ResolveSpend(ec *effects.ExecContext, filter resources.Filter, amount int) (resources.Pool, error) {
	held := make(map[string]int)
	for _, r := range ec.Player.Resources().Resources() {
		held[string(r)] = ec.Player.Resources().Get(r)
	}
	ans, err := f.ask(ec, DecisionRequest{
		Kind:    KindResolveSpend,
		Amount:  amount,
		Allowed: names(filter.Members()),
		Held:    held,
	})
	if err != nil {
		return nil, err
	}
	if ans.Decline {
		return nil, nil
	}
	pool := resources.NewPool()
	for name, n := range ans.Pool {
		c, err := category.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProtocol, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative amount %d of %s", ErrProtocol, n, c)
		}
		pool.Add(c, n)
	}
	return pool, nil
}

func (f *RemoteFrontend) ChooseForeachColor(ec *effects.ExecContext) (category.Category, error) {
	return f.askCategory(ec, DecisionRequest{
		Kind:    KindChooseForeachColor,
		Options: names(category.Placeable()),
	})
}

func (f *RemoteFrontend) ChooseFromDiscard(ec *effects.ExecContext, target effects.Player, filter category.Filter) (effects.Card, error) {
	var ids []string
	for _, c := range target.DiscardPile() {
		if filter.Allows(c.Kind()) {
			ids = append(ids, c.ID())
		}
	}
	idx := target.Index()
	return f.askCard(ec, DecisionRequest{
		Kind:    KindChooseFromDiscard,
		Target:  &idx,
		Allowed: names(filter.Members()),
		Cards:   ids,
	})
}

func (f *RemoteFrontend) ChooseCardToExecute(ec *effects.ExecContext, times int, discardAfter bool) (effects.Card, error) {
	var ids []string
	for _, c := range ec.Player.PlacedCards() {
		if c.IsDynExecutable() {
			ids = append(ids, c.ID())
		}
	}
	return f.askCard(ec, DecisionRequest{
		Kind:         KindChooseCardToExecute,
		Amount:       times,
		DiscardAfter: discardAfter,
		Cards:        ids,
	})
}

func (f *RemoteFrontend) ChooseColorToExecute(ec *effects.ExecContext, amount int) (category.Category, error) {
	return f.askCategory(ec, DecisionRequest{
		Kind:    KindChooseColorToExecute,
		Amount:  amount,
		Options: names(category.Colors()),
	})
}

func (f *RemoteFrontend) ChooseExcludedColor(ec *effects.ExecContext, tied []category.Category) (category.Category, error) {
	return f.askCategory(ec, DecisionRequest{
		Kind:    KindChooseExcludedColor,
		Options: names(tied),
	})
}

func (f *RemoteFrontend) ChooseCardToMove(ec *effects.ExecContext, adjacencies ruleset.Adjacencies) (effects.Card, error) {
	var ids []string
	for _, c := range ec.Player.PlacedCards() {
		if !c.IsStartingCard() {
			ids = append(ids, c.ID())
		}
	}
	adj := make(map[string][]string, len(adjacencies))
	for from, to := range adjacencies {
		adj[string(from)] = names(to)
	}
	return f.askCard(ec, DecisionRequest{
		Kind:        KindChooseCardToMove,
		Cards:       ids,
		Adjacencies: adj,
	})
}

func (f *RemoteFrontend) ChooseMoveDestination(ec *effects.ExecContext, card effects.Card, candidates []category.Category) (category.Category, error) {
	return f.askCategory(ec, DecisionRequest{
		Kind:    KindChooseMoveDestination,
		Cards:   []string{card.ID()},
		Options: names(candidates),
	})
}

func names(cs []category.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
