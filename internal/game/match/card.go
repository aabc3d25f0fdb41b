package match

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
)

// Location is where a card sits: a seat index and one of that player's
// areas.
type Location struct {
	Player int
	Area   category.Category
}

func (l Location) String() string {
	return fmt.Sprintf("player %d %s", l.Player, l.Area)
}

// Card is a card instance in a match. Two cards printed from the same
// template are still distinct instances.
type Card struct {
	id       string
	template *catalog.Template
	match    *Match
	location Location
	markers  int
}

func (c *Card) ID() string { return c.id }
func (c *Card) Name() string { return c.template.Name }
func (c *Card) Kind() category.Category { return c.template.Kind }
func (c *Card) Effect() effects.Effect { return c.template.Effect }
func (c *Card) Template() *catalog.Template { return c.template }
func (c *Card) Location() Location { return c.location }
func (c *Card) Area() category.Category { return c.location.Area }
func (c *Card) Markers() int { return c.markers }
func (c *Card) IsStartingCard() bool { return c.template.IsStartingCard }
func (c *Card) AlwaysTriggers() bool { return c.template.AlwaysTriggers }

// SetMarkers overwrites the marker count. Counts never go negative.
func (c *Card) SetMarkers(n int) {
	if n < 0 {
		n = 0
	}
	c.markers = n
}

// Holder returns the player whose area holds the card.
func (c *Card) Holder() effects.Player {
	p := c.match.player(c.location.Player)
	if p == nil {
		return nil
	}
	return p
}

// IsPlaced reports whether the card is on the table.
func (c *Card) IsPlaced() bool {
	return category.IsPlaceable(c.location.Area)
}

// IsDynExecutable reports whether another effect may run this card on
// demand: it must be placed, and events never are.
func (c *Card) IsDynExecutable() bool {
	return c.IsPlaced() && c.Kind() != category.Event
}

// Discard moves the card to its holder's discard pile.
func (c *Card) Discard() error {
	return c.move(Location{Player: c.location.Player, Area: category.Discard})
}

// DiscardTo moves the card to the discard pile of the given player.
func (c *Card) DiscardTo(player effects.Player) error {
	if player == nil {
		return fmt.Errorf("discard %s: no player", c.id)
	}
	return c.move(Location{Player: player.Index(), Area: category.Discard})
}

// MoveToArea moves the card to another area of its holder.
func (c *Card) MoveToArea(area category.Category) error {
	if !category.IsArea(area) {
		return fmt.Errorf("move %s: %q is not an area", c.id, area)
	}
	return c.move(Location{Player: c.location.Player, Area: area})
}

func (c *Card) move(to Location) error {
	dest := c.match.player(to.Player)
	if dest == nil {
		return fmt.Errorf("move %s: no player %d", c.id, to.Player)
	}
	if err := c.detach(); err != nil {
		return err
	}
	c.location = to
	dest.attach(c)
	return nil
}

func (c *Card) detach() error {
	holder := c.match.player(c.location.Player)
	if holder == nil || !holder.remove(c) {
		// The card is not where it claims to be.
		return fmt.Errorf("%w: %s at %s", ErrCardNotFound, c.id, c.location)
	}
	return nil
}

func newCard(m *Match, template *catalog.Template, at Location) *Card {
	return &Card{
		id:       uuid.NewString(),
		template: template,
		match:    m,
		location: at,
	}
}
