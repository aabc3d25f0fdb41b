// Package server exposes card execution over websocket: each connection
// gets a fresh match built from the configured scenario, and every decision
// the interpreter needs is relayed to the client.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sigil-game/sigil-server-go/internal/config"
	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/effects"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"github.com/sigil-game/sigil-server-go/internal/game/scenario"
	"go.uber.org/zap"
)

// Server serves decision sessions.
type Server struct {
	cfg      config.WebSocketConfig
	catalog  *catalog.Catalog
	rules    *ruleset.Ruleset
	scenario *scenario.Scenario
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates a Server.
func New(cfg config.WebSocketConfig, cat *catalog.Catalog, rules *ruleset.Ruleset, sc *scenario.Scenario, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		catalog:  cat,
		rules:    rules,
		scenario: sc,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.cfg.Path, s.serveWS)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting websocket server",
			zap.String("address", s.cfg.Address),
			zap.String("path", s.cfg.Path),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	logger := s.logger.With(zap.String("session_id", uuid.NewString()))
	c := newWSConn(ws, s.cfg.ReadLimit, s.cfg.WriteTimeout, logger)
	defer c.close()

	s.runSession(r.Context(), c, logger)
}

// runSession builds a match, runs the scenario's card and reports the
// outcome.
func (s *Server) runSession(ctx context.Context, c conn, logger *zap.Logger) {
	remote := newRemoteFrontend(c, s.cfg.DecisionTimeout, logger)
	setup, err := s.scenario.Build(s.catalog, s.rules, remote, logger)
	if err != nil {
		logger.Error("failed to build match", zap.Error(err))
		if msg, mErr := newMessage(TypeError, "", Outcome{Error: err.Error()}); mErr == nil {
			_ = c.send(msg)
		}
		return
	}
	remote.bind(setup.Match)

	logger.Info("session started",
		zap.String("match_id", setup.Match.ID.String()),
		zap.String("card", setup.Card.Name()),
	)

	msg, err := newMessage(TypeMatch, "", setup.Match.View())
	if err != nil {
		logger.Error("failed to encode match", zap.Error(err))
		return
	}
	if err := c.send(msg); err != nil {
		logger.Warn("failed to send match", zap.Error(err))
		return
	}

	res, execErr := setup.Execute(ctx)
	out := Outcome{Result: res.String(), View: setup.Match.View()}
	if execErr != nil {
		out.Error = execErr.Error()
		if errors.Is(execErr, effects.ErrInvariant) {
			logger.Error("card execution violated an invariant", zap.Error(execErr))
		} else {
			logger.Warn("card execution aborted", zap.Error(execErr))
		}
	}

	msg, err = newMessage(TypeResult, "", out)
	if err != nil {
		logger.Error("failed to encode result", zap.Error(err))
		return
	}
	if err := c.send(msg); err != nil {
		logger.Warn("failed to send result", zap.Error(err))
		return
	}
	logger.Info("session finished", zap.Stringer("result", res))
}
