// Package scenario loads match snapshots from YAML so a card can be run
// against a known table without playing a game up to that point.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/match"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Scenario is a table snapshot plus the card to run on it.
type Scenario struct {
	Name    string   `yaml:"name"`
	Players []Player `yaml:"players"`
	Run     Run      `yaml:"run"`
}

// Player describes one seat.
type Player struct {
	Name      string         `yaml:"name"`
	Resources map[string]int `yaml:"resources"`
	Cards     []Card         `yaml:"cards"`
	Hand      []string       `yaml:"hand"`
	Discard   []string       `yaml:"discard"`
}

// Card is a placed card. Area defaults to the template's kind.
type Card struct {
	Name    string `yaml:"name"`
	Area    string `yaml:"area"`
	Markers int    `yaml:"markers"`
}

// Run selects the card to execute: the Card-th card named by the seat's
// cards list, executed by Player.
type Run struct {
	Player int `yaml:"player"`
	Card   int `yaml:"card"`
}

// Parse decodes a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a YAML scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks the structural shape of the scenario.
func (s *Scenario) Validate() error {
	if len(s.Players) == 0 {
		return errors.New("scenario has no players")
	}
	if s.Run.Player < 0 || s.Run.Player >= len(s.Players) {
		return fmt.Errorf("run.player %d out of range", s.Run.Player)
	}
	cards := s.Players[s.Run.Player].Cards
	if s.Run.Card < 0 || s.Run.Card >= len(cards) {
		return fmt.Errorf("run.card %d out of range for player %d", s.Run.Card, s.Run.Player)
	}
	for i, p := range s.Players {
		for res, n := range p.Resources {
			if n < 0 {
				return fmt.Errorf("player %d holds negative %s: %d", i, res, n)
			}
		}
	}
	return nil
}

// Setup is a built match and the card instance selected to run.
type Setup struct {
	Match  *match.Match
	Player *match.Player
	Card   *match.Card
}

// Execute runs the selected card.
func (s *Setup) Execute(ctx context.Context) (effects.Result, error) {
	return effects.Execute(ctx, s.Card, s.Player)
}

// Build creates a match from the scenario, resolving card names in cat.
func (s *Scenario) Build(cat *catalog.Catalog, rules *ruleset.Ruleset, frontend effects.Frontend, logger *zap.Logger) (*Setup, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	m := match.New(rules, frontend, logger)
	setup := &Setup{Match: m}

	for i, sp := range s.Players {
		name := sp.Name
		if name == "" {
			name = fmt.Sprintf("player-%d", i)
		}
		p := m.AddPlayer(name)

		for res, n := range sp.Resources {
			c, err := category.Parse(res)
			if err != nil {
				return nil, fmt.Errorf("player %d resources: %w", i, err)
			}
			p.Resources().Add(c, n)
		}

		for j, sc := range sp.Cards {
			tmpl, err := cat.Lookup(sc.Name)
			if err != nil {
				return nil, fmt.Errorf("player %d card %d: %w", i, j, err)
			}
			area := tmpl.Kind
			if sc.Area != "" {
				if area, err = category.Parse(sc.Area); err != nil {
					return nil, fmt.Errorf("player %d card %q: %w", i, sc.Name, err)
				}
			}
			card, err := p.AddCard(tmpl, area)
			if err != nil {
				return nil, fmt.Errorf("player %d: %w", i, err)
			}
			card.SetMarkers(sc.Markers)
			if i == s.Run.Player && j == s.Run.Card {
				setup.Player = p
				setup.Card = card
			}
		}

		if err := addNamed(cat, p, sp.Hand, category.Hand); err != nil {
			return nil, fmt.Errorf("player %d hand: %w", i, err)
		}
		if err := addNamed(cat, p, sp.Discard, category.Discard); err != nil {
			return nil, fmt.Errorf("player %d discard: %w", i, err)
		}
	}
	return setup, nil
}

func addNamed(cat *catalog.Catalog, p *match.Player, names []string, area category.Category) error {
	for _, name := range names {
		tmpl, err := cat.Lookup(name)
		if err != nil {
			return err
		}
		if _, err := p.AddCard(tmpl, area); err != nil {
			return err
		}
	}
	return nil
}
