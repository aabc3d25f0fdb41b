package match

import (
	"context"
	"fmt"

	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/resources"
	"go.uber.org/zap"
)

// Player is a seat in a match: resources plus one ordered slice of cards per
// area.
type Player struct {
	index     int
	name      string
	match     *Match
	resources resources.Pool
	areas     map[category.Category][]*Card
}

func newPlayer(m *Match, index int, name string) *Player {
	return &Player{
		index:     index,
		name:      name,
		match:     m,
		resources: resources.NewPool(),
		areas:     make(map[category.Category][]*Card),
	}
}

// Index returns the seat index.
func (p *Player) Index() int { return p.index }

// Name returns the display name.
func (p *Player) Name() string { return p.name }

// Match returns the match the player is seated in.
func (p *Player) Match() effects.Match { return p.match }

// Resources returns the live resource pool; callers mutate it in place.
func (p *Player) Resources() resources.Pool { return p.resources }

// CountCardsOfType returns how many cards the player holds in an area.
func (p *Player) CountCardsOfType(area category.Category) int {
	return len(p.areas[area])
}

// Cards returns the cards in an area, in arrival order.
func (p *Player) Cards(area category.Category) []*Card {
	return append([]*Card(nil), p.areas[area]...)
}

// DiscardPile returns the discard pile, oldest first.
func (p *Player) DiscardPile() []effects.Card {
	return toEffectCards(p.areas[category.Discard])
}

// PlacedCards returns every card on the table, grouped by area in
// category order.
func (p *Player) PlacedCards() []effects.Card {
	var out []effects.Card
	for _, area := range category.Placeable() {
		out = append(out, toEffectCards(p.areas[area])...)
	}
	return out
}

// NeighborPlayer returns the player offset seats away, wrapping around the
// table.
func (p *Player) NeighborPlayer(offset int) effects.Player {
	n := len(p.match.players)
	idx := ((p.index+offset)%n + n) % n
	return p.match.players[idx]
}

// PlaceCard puts a card into this player's area for its kind.
func (p *Player) PlaceCard(card effects.Card) error {
	c, ok := card.(*Card)
	if !ok || c.match != p.match {
		return fmt.Errorf("place: card %s does not belong to this match", card.ID())
	}
	if !category.IsPlaceable(c.Kind()) {
		return fmt.Errorf("place: card %s of kind %s cannot be placed", c.id, c.Kind())
	}
	return c.move(Location{Player: p.index, Area: c.Kind()})
}

// AddCard creates a new instance of template in one of the player's areas.
func (p *Player) AddCard(template *catalog.Template, area category.Category) (*Card, error) {
	if template == nil {
		return nil, fmt.Errorf("add card: nil template")
	}
	if !category.IsArea(area) {
		return nil, fmt.Errorf("add card %q: %q is not an area", template.Name, area)
	}
	c := newCard(p.match, template, Location{Player: p.index, Area: area})
	p.attach(c)
	return c, nil
}

// ExecuteColorAction runs every card the player has placed in a color.
func (p *Player) ExecuteColorAction(ctx context.Context, color category.Category) error {
	return p.executeArea(ctx, color, false)
}

// ExecuteColorEvergreenAction runs only the always-triggering cards placed
// in a color.
func (p *Player) ExecuteColorEvergreenAction(ctx context.Context, color category.Category) error {
	return p.executeArea(ctx, color, true)
}

func (p *Player) executeArea(ctx context.Context, area category.Category, evergreenOnly bool) error {
	// Cards may leave the area while it runs; iterate a snapshot and skip
	// any card that is no longer there.
	cards := p.Cards(area)
	at := Location{Player: p.index, Area: area}

	p.match.logger.Debug("executing color action",
		zap.Int("player", p.index),
		zap.String("color", string(area)),
		zap.Int("cards", len(cards)),
		zap.Bool("evergreen_only", evergreenOnly),
	)

	for _, c := range cards {
		if c.location != at {
			continue
		}
		if evergreenOnly && !c.AlwaysTriggers() {
			continue
		}
		if _, err := effects.Execute(ctx, c, p); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) attach(c *Card) {
	p.areas[c.location.Area] = append(p.areas[c.location.Area], c)
}

func (p *Player) remove(c *Card) bool {
	cards := p.areas[c.location.Area]
	for i, existing := range cards {
		if existing == c {
			p.areas[c.location.Area] = append(cards[:i:i], cards[i+1:]...)
			return true
		}
	}
	return false
}

func toEffectCards(cards []*Card) []effects.Card {
	out := make([]effects.Card, len(cards))
	for i, c := range cards {
		out[i] = c
	}
	return out
}
