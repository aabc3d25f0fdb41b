// Package match holds the live state of a game: seated players, their
// areas and the card instances in them. It implements the collaborator
// interfaces the effects package evaluates against.
package match

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"go.uber.org/zap"
)

// ErrCardNotFound is returned when a card is not in the area it claims to
// occupy.
var ErrCardNotFound = errors.New("card not found")

// Match is a running game. It is not safe for concurrent use; a match is
// driven by one goroutine at a time.
type Match struct {
	ID       uuid.UUID
	players  []*Player
	frontend effects.Frontend
	ruleset  *ruleset.Ruleset
	logger   *zap.Logger
}

// New creates an empty match. A nil ruleset selects ruleset.Default and a
// nil logger discards output.
func New(rules *ruleset.Ruleset, frontend effects.Frontend, logger *zap.Logger) *Match {
	if rules == nil {
		rules = ruleset.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	return &Match{
		ID:       id,
		frontend: frontend,
		ruleset:  rules,
		logger:   logger.With(zap.String("match_id", id.String())),
	}
}

// AddPlayer seats a new player after the existing ones.
func (m *Match) AddPlayer(name string) *Player {
	p := newPlayer(m, len(m.players), name)
	m.players = append(m.players, p)
	m.logger.Debug("player joined", zap.Int("player", p.index), zap.String("name", name))
	return p
}

// Player returns the player at a seat index.
func (m *Match) Player(index int) (*Player, error) {
	p := m.player(index)
	if p == nil {
		return nil, fmt.Errorf("no player at seat %d (match has %d)", index, len(m.players))
	}
	return p, nil
}

func (m *Match) player(index int) *Player {
	if index < 0 || index >= len(m.players) {
		return nil
	}
	return m.players[index]
}

// Players returns the seated players in turn order.
func (m *Match) Players() []effects.Player {
	out := make([]effects.Player, len(m.players))
	for i, p := range m.players {
		out[i] = p
	}
	return out
}

// NumPlayers returns how many players are seated.
func (m *Match) NumPlayers() int { return len(m.players) }

func (m *Match) Frontend() effects.Frontend { return m.frontend }

// SetFrontend replaces the decision provider.
func (m *Match) SetFrontend(f effects.Frontend) { m.frontend = f }

func (m *Match) Ruleset() effects.Ruleset { return m.ruleset }

// Rules returns the concrete ruleset.
func (m *Match) Rules() *ruleset.Ruleset { return m.ruleset }

func (m *Match) Logger() *zap.Logger { return m.logger }

// FindCard looks a card instance up by ID across every player and area.
func (m *Match) FindCard(id string) (*Card, error) {
	for _, p := range m.players {
		for _, area := range category.Areas() {
			for _, c := range p.areas[area] {
				if c.id == id {
					return c, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCardNotFound, id)
}
