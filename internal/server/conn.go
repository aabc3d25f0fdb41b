package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// conn carries protocol messages for one session.
type conn interface {
	send(msg Message) error
	recv(ctx context.Context) (Message, error)
}

// wsConn adapts a websocket connection. A read pump decodes frames into a
// channel; writes happen on the session goroutine only.
type wsConn struct {
	ws           *websocket.Conn
	writeTimeout time.Duration
	logger       *zap.Logger

	incoming  chan Message
	done      chan struct{}
	closeOnce sync.Once
	readErr   error
}

func newWSConn(ws *websocket.Conn, readLimit int64, writeTimeout time.Duration, logger *zap.Logger) *wsConn {
	ws.SetReadLimit(readLimit)
	c := &wsConn{
		ws:           ws,
		writeTimeout: writeTimeout,
		logger:       logger,
		incoming:     make(chan Message, 16),
		done:         make(chan struct{}),
	}
	go c.readPump()
	return c
}

func (c *wsConn) readPump() {
	defer close(c.incoming)
	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			c.readErr = err
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("dropping malformed frame", zap.Error(err))
			continue
		}
		select {
		case c.incoming <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *wsConn) send(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) recv(ctx context.Context) (Message, error) {
	select {
	case msg, ok := <-c.incoming:
		if !ok {
			return Message{}, fmt.Errorf("connection closed: %w", c.readErr)
		}
		return msg, nil
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}

// close sends a normal closure and releases the connection.
func (c *wsConn) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		deadline := time.Now().Add(c.writeTimeout)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = c.ws.WriteControl(websocket.CloseMessage, msg, deadline)
		c.ws.Close()
	})
}
