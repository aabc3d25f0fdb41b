package effects_test

import (
	"context"
	"testing"

	"github.com/sigil-game/sigil-server-go/internal/frontend"
	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/category"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/match"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// harness is a small table: players seated in a match whose decisions come
// from a Scripted frontend.
type harness struct {
	t       *testing.T
	match   *match.Match
	fe      *frontend.Scripted
	players []*match.Player
	source  *match.Card
}

func newHarness(t *testing.T, players int, answers ...any) *harness {
	t.Helper()
	fe := frontend.NewScripted(answers...)
	m := match.New(nil, fe, zaptest.NewLogger(t))
	h := &harness{t: t, match: m, fe: fe}
	for i := 0; i < players; i++ {
		h.players = append(h.players, m.AddPlayer("player"))
	}
	// The card every test effect runs on behalf of. Artifacts are never
	// counted as a color.
	h.source = h.place(0, "Source", category.Artifact, nil)
	return h
}

// place puts a new card of the given kind into the matching area.
func (h *harness) place(player int, name string, kind category.Category, effect effects.Effect) *match.Card {
	h.t.Helper()
	return h.add(player, name, kind, kind, effect)
}

func (h *harness) add(player int, name string, kind, area category.Category, effect effects.Effect) *match.Card {
	h.t.Helper()
	tmpl := &catalog.Template{Name: name, Kind: kind, Effect: effect}
	c, err := h.players[player].AddCard(tmpl, area)
	require.NoError(h.t, err)
	return c
}

func (h *harness) evergreen(player int, name string, kind category.Category, effect effects.Effect) *match.Card {
	h.t.Helper()
	tmpl := &catalog.Template{Name: name, Kind: kind, Effect: effect, AlwaysTriggers: true}
	c, err := h.players[player].AddCard(tmpl, kind)
	require.NoError(h.t, err)
	return c
}

// run executes effect for player 0 on behalf of the source card.
func (h *harness) run(effect effects.Effect) (effects.Result, error) {
	return h.runOn(h.source, effect)
}

func (h *harness) runOn(card *match.Card, effect effects.Effect) (effects.Result, error) {
	return effects.Run(context.Background(), effect, card, h.players[0])
}

func (h *harness) p(i int) *match.Player { return h.players[i] }

func gain(c category.Category, n int) effects.GainResource {
	return effects.GainResource{Resource: c, Amount: n}
}

// failing always reports CantExec: the source card never has markers.
var failing = effects.RemoveMarker{Amount: 1}
