// Package config loads server configuration with viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Frontend modes.
const (
	FrontendAuto   = "auto"
	FrontendRemote = "remote"
)

// Config is the full server configuration.
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Game    GameConfig
}

// ServerConfig holds network settings.
type ServerConfig struct {
	WebSocket WebSocketConfig
}

// WebSocketConfig configures the remote frontend endpoint.
type WebSocketConfig struct {
	Address         string
	Path            string
	DecisionTimeout time.Duration
	ReadLimit       int64
	WriteTimeout    time.Duration
}

// LoggingConfig selects log level and encoding.
type LoggingConfig struct {
	Level  string
	Format string
}

// GameConfig points at the rules data and picks the frontend. Empty ruleset
// path selects the built-in default ruleset.
type GameConfig struct {
	RulesetPath  string
	CatalogPath  string
	ScenarioPath string
	Frontend     string
}

// Load reads configuration from an optional YAML file, SIGIL_ environment
// variables and defaults, in that order of precedence from last to first.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.websocket.address", ":8080")
	v.SetDefault("server.websocket.path", "/ws")
	v.SetDefault("server.websocket.decision_timeout", "60s")
	v.SetDefault("server.websocket.read_limit", 64*1024)
	v.SetDefault("server.websocket.write_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("game.ruleset_path", "")
	v.SetDefault("game.catalog_path", "config/cards.yaml")
	v.SetDefault("game.scenario_path", "config/scenario.yaml")
	v.SetDefault("game.frontend", FrontendAuto)

	// SIGIL_SERVER_WEBSOCKET_ADDRESS overrides server.websocket.address.
	v.SetEnvPrefix("SIGIL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			WebSocket: WebSocketConfig{
				Address:         v.GetString("server.websocket.address"),
				Path:            v.GetString("server.websocket.path"),
				DecisionTimeout: v.GetDuration("server.websocket.decision_timeout"),
				ReadLimit:       v.GetInt64("server.websocket.read_limit"),
				WriteTimeout:    v.GetDuration("server.websocket.write_timeout"),
			},
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString("logging.level")),
			Format: strings.ToLower(v.GetString("logging.format")),
		},
		Game: GameConfig{
			RulesetPath:  v.GetString("game.ruleset_path"),
			CatalogPath:  v.GetString("game.catalog_path"),
			ScenarioPath: v.GetString("game.scenario_path"),
			Frontend:     strings.ToLower(v.GetString("game.frontend")),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	ws := cfg.Server.WebSocket
	if ws.Address == "" {
		return fmt.Errorf("server.websocket.address must be set")
	}
	if !strings.HasPrefix(ws.Path, "/") {
		return fmt.Errorf("server.websocket.path must start with /, got %q", ws.Path)
	}
	if ws.DecisionTimeout <= 0 {
		return fmt.Errorf("server.websocket.decision_timeout must be positive, got %v", ws.DecisionTimeout)
	}
	if ws.ReadLimit <= 0 {
		return fmt.Errorf("server.websocket.read_limit must be positive, got %d", ws.ReadLimit)
	}
	if ws.WriteTimeout <= 0 {
		return fmt.Errorf("server.websocket.write_timeout must be positive, got %v", ws.WriteTimeout)
	}
	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}
	switch cfg.Game.Frontend {
	case FrontendAuto, FrontendRemote:
	default:
		return fmt.Errorf("game.frontend must be %s or %s, got %q", FrontendAuto, FrontendRemote, cfg.Game.Frontend)
	}
	if cfg.Game.CatalogPath == "" {
		return fmt.Errorf("game.catalog_path must be set")
	}
	if cfg.Game.ScenarioPath == "" {
		return fmt.Errorf("game.scenario_path must be set")
	}
	return nil
}
