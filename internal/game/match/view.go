package match

import (
	"github.com/sigil-game/sigil-server-go/internal/game/category"
)

// CardView is a read-only snapshot of a card instance.
type CardView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Markers int    `json:"markers,omitempty"`
}

// PlayerView is a read-only snapshot of a player.
type PlayerView struct {
	Index     int                   `json:"index"`
	Name      string                `json:"name"`
	Resources map[string]int        `json:"resources"`
	Areas     map[string][]CardView `json:"areas"`
}

// View is a read-only snapshot of the whole match, safe to serialize.
type View struct {
	ID      string       `json:"id"`
	Ruleset string       `json:"ruleset"`
	Players []PlayerView `json:"players"`
}

// View snapshots the match.
func (m *Match) View() View {
	v := View{ID: m.ID.String(), Ruleset: m.ruleset.Name}
	for _, p := range m.players {
		v.Players = append(v.Players, p.View())
	}
	return v
}

// View snapshots the player. Empty areas are omitted.
func (p *Player) View() PlayerView {
	pv := PlayerView{
		Index:     p.index,
		Name:      p.name,
		Resources: make(map[string]int),
		Areas:     make(map[string][]CardView),
	}
	for _, r := range p.resources.Resources() {
		pv.Resources[string(r)] = p.resources.Get(r)
	}
	for _, area := range category.Areas() {
		cards := p.areas[area]
		if len(cards) == 0 {
			continue
		}
		views := make([]CardView, len(cards))
		for i, c := range cards {
			views[i] = CardView{ID: c.id, Name: c.Name(), Kind: string(c.Kind()), Markers: c.markers}
		}
		pv.Areas[string(area)] = views
	}
	return pv
}
