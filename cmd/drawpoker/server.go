package main

import (
	"fmt"
	"os"

	"github.com/lox/drawpoker/cmd/drawpoker/shared"
	"github.com/lox/drawpoker/internal/display"
	"github.com/lox/drawpoker/internal/randutil"
	"github.com/lox/drawpoker/internal/server"
)

// ServerCmd runs the game server. Flags override the config file.
type ServerCmd struct {
	Config     string `kong:"default='drawpoker.hcl',type='path',help='HCL config file (missing file means defaults)'"`
	Addr       string `kong:"help='TCP address for game clients'"`
	HTTPAddr   string `kong:"name='http-addr',help='HTTP address for /ws, /health and /stats'"`
	MaxPlayers int    `kong:"help='Players seated per game'"`
	Seed       *int64 `kong:"help='Deterministic RNG seed for the server (optional)'"`
	Debug      bool   `kong:"help='Enable debug logging'"`
	Pretty     bool   `kong:"help='Print every finished game as a table'"`
	StatsFile  string `kong:"type='path',help='Write a JSON stats snapshot here on shutdown'"`
	EventLog   string `kong:"type='path',help='Append one JSON line per game event to this file'"`
}

func (c *ServerCmd) Run() error {
	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	c.override(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := shared.SetupLogger(cfg.Server.LogLevel, c.Debug)
	if err != nil {
		return err
	}

	var seed int64
	if c.Seed != nil {
		seed = *c.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = randutil.Seed(0)
		logger.Info("Using random seed", "seed", seed)
	}

	var monitors []server.GameMonitor
	if c.Pretty {
		monitors = append(monitors, server.NewPrettyMonitor(os.Stdout, display.DefaultStyles()))
	}
	if path := cfg.Server.EventLog; path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		defer f.Close()
		monitors = append(monitors, server.NewEventLog(f))
	}

	s := server.NewServer(cfg, logger,
		server.WithRNG(randutil.New(seed)),
		server.WithMonitor(server.NewMultiGameMonitor(monitors...)),
	)

	logger.Info("Starting draw poker server",
		"address", cfg.Server.Address,
		"http_address", cfg.Server.HTTPAddress,
		"max_players", cfg.Server.MaxPlayers,
		"starting_cash", cfg.Rules.StartingCash,
		"minimum_bet", cfg.Rules.MinimumBet,
		"max_exchanges", cfg.Rules.MaxExchanges)

	ctx := shared.SetupSignalHandler(logger)
	runErr := s.ListenAndServe(ctx)

	if path := cfg.Server.StatsFile; path != "" {
		if err := s.Stats().WriteSnapshotFile(path); err != nil {
			logger.Error("Failed to write stats snapshot", "path", path, "error", err)
		} else {
			logger.Info("Wrote stats snapshot", "path", path)
		}
	}
	return runErr
}

func (c *ServerCmd) override(cfg *server.Config) {
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}
	if c.HTTPAddr != "" {
		cfg.Server.HTTPAddress = c.HTTPAddr
	}
	if c.MaxPlayers != 0 {
		cfg.Server.MaxPlayers = c.MaxPlayers
	}
	if c.StatsFile != "" {
		cfg.Server.StatsFile = c.StatsFile
	}
	if c.EventLog != "" {
		cfg.Server.EventLog = c.EventLog
	}
	if c.Debug {
		cfg.Server.LogLevel = "debug"
	}
}
