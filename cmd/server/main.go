package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sigil-game/sigil-server-go/internal/config"
	"github.com/sigil-game/sigil-server-go/internal/frontend"
	"github.com/sigil-game/sigil-server-go/internal/game/catalog"
	"github.com/sigil-game/sigil-server-go/internal/game/ruleset"
	"github.com/sigil-game/sigil-server-go/internal/game/scenario"
	"github.com/sigil-game/sigil-server-go/internal/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting sigil server",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("frontend", cfg.Game.Frontend),
	)

	rules := ruleset.Default()
	if cfg.Game.RulesetPath != "" {
		rules, err = ruleset.Load(cfg.Game.RulesetPath)
		if err != nil {
			logger.Fatal("failed to load ruleset", zap.String("path", cfg.Game.RulesetPath), zap.Error(err))
		}
	}
	logger.Info("ruleset loaded", zap.String("name", rules.Name))

	cat, err := catalog.Load(cfg.Game.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.String("path", cfg.Game.CatalogPath), zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.Int("cards", cat.Len()),
		zap.Int("distinct_effects", cat.DistinctEffects()),
	)

	sc, err := scenario.Load(cfg.Game.ScenarioPath)
	if err != nil {
		logger.Fatal("failed to load scenario", zap.String("path", cfg.Game.ScenarioPath), zap.Error(err))
	}

	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Game.Frontend == config.FrontendAuto {
		if err := runAuto(ctx, sc, cat, rules, logger); err != nil {
			logger.Fatal("scenario failed", zap.Error(err))
		}
		return
	}

	srv := server.New(cfg.Server.WebSocket, cat, rules, sc, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal("websocket server error", zap.Error(err))
	}
	logger.Info("sigil server stopped")
}

// runAuto executes the scenario once with deterministic decisions.
func runAuto(ctx context.Context, sc *scenario.Scenario, cat *catalog.Catalog, rules *ruleset.Ruleset, logger *zap.Logger) error {
	setup, err := sc.Build(cat, rules, frontend.NewAuto(logger), logger)
	if err != nil {
		return err
	}
	res, err := setup.Execute(ctx)
	if err != nil {
		return err
	}
	logger.Info("scenario executed",
		zap.String("card", setup.Card.Name()),
		zap.Stringer("result", res),
		zap.Stringer("resources", setup.Player.Resources()),
	)
	return nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
