package server

import (
	"encoding/json"
	"errors"

	"github.com/sigil-game/sigil-server-go/internal/game/match"
)

// ErrProtocol is returned when a client sends something the decision
// protocol does not allow.
var ErrProtocol = errors.New("protocol violation")

// Message types.
const (
	TypeMatch    = "match"    // server -> client: initial snapshot
	TypeDecision = "decision" // server -> client: a decision request
	TypeAnswer   = "answer"   // client -> server: reply to a decision
	TypeResult   = "result"   // server -> client: outcome and final snapshot
	TypeError    = "error"    // server -> client: setup failure
)

// Decision kinds, one per frontend method.
const (
	KindResolveSpend          = "resolve_spend"
	KindChooseForeachColor    = "choose_foreach_color"
	KindChooseFromDiscard     = "choose_from_discard"
	KindChooseCardToExecute   = "choose_card_to_execute"
	KindChooseColorToExecute  = "choose_color_to_execute"
	KindChooseExcludedColor   = "choose_excluded_color"
	KindChooseCardToMove      = "choose_card_to_move"
	KindChooseMoveDestination = "choose_move_destination"
)

// Message is the envelope of every frame.
type Message struct {
	Type string          `json:"type"`
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// DecisionRequest describes one pending decision. Only the fields relevant
// to Kind are set.
type DecisionRequest struct {
	Kind         string              `json:"kind"`
	Player       int                 `json:"player"`
	CardID       string              `json:"card_id"`
	Amount       int                 `json:"amount,omitempty"`
	DiscardAfter bool                `json:"discard_after,omitempty"`
	Target       *int                `json:"target,omitempty"`
	Allowed      []string            `json:"allowed,omitempty"`
	Options      []string            `json:"options,omitempty"`
	Cards        []string            `json:"cards,omitempty"`
	Adjacencies  map[string][]string `json:"adjacencies,omitempty"`
	Held         map[string]int      `json:"held,omitempty"`
}

// Answer is the client's reply. Decline wins over every other field.
type Answer struct {
	Decline  bool           `json:"decline,omitempty"`
	Pool     map[string]int `json:"pool,omitempty"`
	Category string         `json:"category,omitempty"`
	CardID   string         `json:"card_id,omitempty"`
}

// Outcome reports how the card execution ended.
type Outcome struct {
	Result string     `json:"result"`
	Error  string     `json:"error,omitempty"`
	View   match.View `json:"view"`
}

func newMessage(typ, id string, data any) (Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: typ, ID: id, Data: raw}, nil
}
