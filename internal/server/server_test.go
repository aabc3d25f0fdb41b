package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sigil-game/sigil-server-go/internal/config"
	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"github.com/sigil-game/sigil-server-go/internal/game/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const tradeCatalog = `
cards:
  - name: Trade
    kind: yellow
    effect:
      convert:
        spend: {spend: {colors: any, amount: 1}}
        gain: {gain: {resource: YELLOW, amount: 2}}
`

const tradeScenario = `
players:
  - name: alice
    resources: {RED: 1}
    cards: [{name: Trade}]
run: {player: 0, card: 0}
`

func startServer(t *testing.T, timeout time.Duration) string {
	t.Helper()
	cat, err := catalog.Parse([]byte(tradeCatalog))
	require.NoError(t, err)
	sc, err := scenario.Parse([]byte(tradeScenario))
	require.NoError(t, err)

	cfg := config.WebSocketConfig{
		Path:            "/ws",
		DecisionTimeout: timeout,
		ReadLimit:       1 << 16,
		WriteTimeout:    5 * time.Second,
	}
	srv := New(cfg, cat, ruleset.Default(), sc, zaptest.NewLogger(t))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(10*time.Second)))
	return ws
}

func read(t *testing.T, ws *websocket.Conn, typ string) Message {
	t.Helper()
	var msg Message
	require.NoError(t, ws.ReadJSON(&msg))
	require.Equal(t, typ, msg.Type, "payload: %s", msg.Data)
	return msg
}

func answer(t *testing.T, ws *websocket.Conn, id string, ans Answer) {
	t.Helper()
	msg, err := newMessage(TypeAnswer, id, ans)
	require.NoError(t, err)
	require.NoError(t, ws.WriteJSON(msg))
}

func outcome(t *testing.T, msg Message) Outcome {
	t.Helper()
	var out Outcome
	require.NoError(t, json.Unmarshal(msg.Data, &out))
	return out
}

func TestServer_SpendIsRelayed(t *testing.T) {
	ws := dial(t, startServer(t, 5*time.Second))

	read(t, ws, TypeMatch)

	msg := read(t, ws, TypeDecision)
	var req DecisionRequest
	require.NoError(t, json.Unmarshal(msg.Data, &req))
	assert.Equal(t, KindResolveSpend, req.Kind)
	assert.Equal(t, 1, req.Amount)
	assert.Equal(t, 1, req.Held["RED"])
	assert.Len(t, req.Allowed, 5)

	answer(t, ws, msg.ID, Answer{Pool: map[string]int{"RED": 1}})

	out := outcome(t, read(t, ws, TypeResult))
	assert.Equal(t, "DONE", out.Result)
	assert.Empty(t, out.Error)
	require.Len(t, out.View.Players, 1)
	assert.Equal(t, 2, out.View.Players[0].Resources["YELLOW"])
	assert.Zero(t, out.View.Players[0].Resources["RED"])
}

func TestServer_DeclinedSpend(t *testing.T) {
	ws := dial(t, startServer(t, 5*time.Second))

	read(t, ws, TypeMatch)
	msg := read(t, ws, TypeDecision)
	answer(t, ws, msg.ID, Answer{Decline: true})

	out := outcome(t, read(t, ws, TypeResult))
	assert.Equal(t, "DONE", out.Result)
	assert.Equal(t, 1, out.View.Players[0].Resources["RED"])
	assert.Zero(t, out.View.Players[0].Resources["YELLOW"])
}

func TestServer_InvalidSpendIsFatal(t *testing.T) {
	ws := dial(t, startServer(t, 5*time.Second))

	read(t, ws, TypeMatch)
	msg := read(t, ws, TypeDecision)
	answer(t, ws, msg.ID, Answer{Pool: map[string]int{"BLUE": 1}})

	out := outcome(t, read(t, ws, TypeResult))
	assert.Equal(t, "CANT_EXEC", out.Result)
	assert.Contains(t, out.Error, "invariant")
}

func TestServer_NegativeSpendIsProtocolError(t *testing.T) {
	ws := dial(t, startServer(t, 5*time.Second))

	read(t, ws, TypeMatch)
	msg := read(t, ws, TypeDecision)
	answer(t, ws, msg.ID, Answer{Pool: map[string]int{"RED": 2, "BLUE": -1}})

	out := outcome(t, read(t, ws, TypeResult))
	assert.Equal(t, "CANT_EXEC", out.Result)
	assert.Contains(t, out.Error, ErrProtocol.Error())
}

func TestServer_WrongAnswerID(t *testing.T) {
	ws := dial(t, startServer(t, 5*time.Second))

	read(t, ws, TypeMatch)
	read(t, ws, TypeDecision)
	answer(t, ws, "not-the-id", Answer{Decline: true})

	out := outcome(t, read(t, ws, TypeResult))
	assert.Equal(t, "CANT_EXEC", out.Result)
	assert.Contains(t, out.Error, ErrProtocol.Error())
}

func TestServer_DecisionTimeout(t *testing.T) {
	ws := dial(t, startServer(t, 50*time.Millisecond))

	read(t, ws, TypeMatch)
	read(t, ws, TypeDecision)

	out := outcome(t, read(t, ws, TypeResult))
	assert.Equal(t, "CANT_EXEC", out.Result)
	assert.Contains(t, out.Error, "deadline exceeded")
}
