package frontend

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
)

// ErrScriptExhausted is returned when a Scripted frontend is asked for more
// decisions than it was given.
var ErrScriptExhausted = errors.New("scripted frontend: no answers left")

// Call records one decision request made to a Scripted frontend.
type Call struct {
	Method       string
	Amount       int
	Filter       category.Filter
	Target       int
	DiscardAfter bool
	Options      []category.Category
	Card         effects.Card
}

// Scripted replays a fixed queue of answers, one per decision, and records
// every request it receives. An answer is a resources.Pool, a
// category.Category, an effects.Card, nil to decline, or an error to fail
// the request.
type Scripted struct {
	mu      sync.Mutex
	answers []any
	calls   []Call
}

var _ effects.Frontend = (*Scripted)(nil)

// NewScripted creates a Scripted frontend with the given answers.
func NewScripted(answers ...any) *Scripted {
	return &Scripted{answers: answers}
}

// Push appends answers to the queue.
func (s *Scripted) Push(answers ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = append(s.answers, answers...)
}

// Calls returns the requests received so far.
func (s *Scripted) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Methods returns the method names of the requests received so far.
func (s *Scripted) Methods() []string {
	calls := s.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Method
	}
	return out
}

// Remaining returns how many answers are still queued.
func (s *Scripted) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.answers)
}

func (s *Scripted) next(call Call) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
	if len(s.answers) == 0 {
		return nil, fmt.Errorf("%w (%s)", ErrScriptExhausted, call.Method)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if err, ok := answer.(error); ok {
		return nil, err
	}
	return answer, nil
}

func (s *Scripted) nextCard(call Call) (effects.Card, error) {
	answer, err := s.next(call)
	if err != nil || answer == nil {
		return nil, err
	}
	card, ok := answer.(effects.Card)
	if !ok {
		return nil, fmt.Errorf("scripted %s: answer %T is not a card", call.Method, answer)
	}
	return card, nil
}

func (s *Scripted) nextCategory(call Call) (category.Category, error) {
	answer, err := s.next(call)
	if err != nil || answer == nil {
		return category.None, err
	}
	c, ok := answer.(category.Category)
	if !ok {
		return category.None, fmt.Errorf("scripted %s: answer %T is not a category", call.Method, answer)
	}
	return c, nil
}

func (s *Scripted) ResolveSpend(ec *effects.ExecContext, filter resources.Filter, amount int) (resources.Pool, error) {
	answer, err := s.next(Call{Method: "ResolveSpend", Filter: filter, Amount: amount})
	if err != nil || answer == nil {
		return nil, err
	}
	pool, ok := answer.(resources.Pool)
	if !ok {
		return nil, fmt.Errorf("scripted ResolveSpend: answer %T is not a pool", answer)
	}
	return pool.Copy(), nil
}

func (s *Scripted) ChooseForeachColor(ec *effects.ExecContext) (category.Category, error) {
	return s.nextCategory(Call{Method: "ChooseForeachColor"})
}

func (s *Scripted) ChooseFromDiscard(ec *effects.ExecContext, target effects.Player, filter category.Filter) (effects.Card, error) {
	return s.nextCard(Call{Method: "ChooseFromDiscard", Target: target.Index(), Filter: filter})
}

func (s *Scripted) ChooseCardToExecute(ec *effects.ExecContext, times int, discardAfter bool) (effects.Card, error) {
	return s.nextCard(Call{Method: "ChooseCardToExecute", Amount: times, DiscardAfter: discardAfter})
}

func (s *Scripted) ChooseColorToExecute(ec *effects.ExecContext, amount int) (category.Category, error) {
	return s.nextCategory(Call{Method: "ChooseColorToExecute", Amount: amount})
}

func (s *Scripted) ChooseExcludedColor(ec *effects.ExecContext, tied []category.Category) (category.Category, error) {
	return s.nextCategory(Call{Method: "ChooseExcludedColor", Options: append([]category.Category(nil), tied...)})
}

func (s *Scripted) ChooseCardToMove(ec *effects.ExecContext, adjacencies ruleset.Adjacencies) (effects.Card, error) {
	return s.nextCard(Call{Method: "ChooseCardToMove"})
}

func (s *Scripted) ChooseMoveDestination(ec *effects.ExecContext, card effects.Card, candidates []category.Category) (category.Category, error) {
	return s.nextCategory(Call{Method: "ChooseMoveDestination", Card: card, Options: append([]category.Category(nil), candidates...)})
}
