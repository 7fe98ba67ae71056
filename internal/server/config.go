package server

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/drawpoker/internal/game"
	"github.com/lox/drawpoker/internal/protocol"
)

const (
	DefaultAddress     = ":8081"
	DefaultHTTPAddress = ":8082"
	DefaultMaxPlayers  = 4
	DefaultLogLevel    = "info"

	minTablePlayers = 2
	maxTablePlayers = 8
)

// Config is the complete server configuration.
type Config struct {
	Server *ServerSettings `hcl:"server,block"`
	Rules  *RulesSettings  `hcl:"rules,block"`
}

// ServerSettings contains listener and process settings.
type ServerSettings struct {
	Address         string `hcl:"address,optional"`
	HTTPAddress     string `hcl:"http_address,optional"`
	MaxPlayers      int    `hcl:"max_players,optional"`
	MaxMessageBytes int    `hcl:"max_message_bytes,optional"`
	LogLevel        string `hcl:"log_level,optional"`
	StatsFile       string `hcl:"stats_file,optional"`
	EventLog        string `hcl:"event_log,optional"`
}

// RulesSettings overrides the table limits of every game.
type RulesSettings struct {
	StartingCash int `hcl:"starting_cash,optional"`
	MinimumBet   int `hcl:"minimum_bet,optional"`
	RefillCash   int `hcl:"refill_cash,optional"`
	MaxExchanges int `hcl:"max_exchanges,optional"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from an HCL file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(src, filename)
}

// ParseConfig decodes HCL source. filename is only used in diagnostics.
func ParseConfig(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Rules == nil {
		c.Rules = &RulesSettings{}
	}

	s := c.Server
	if s.Address == "" {
		s.Address = DefaultAddress
	}
	if s.HTTPAddress == "" {
		s.HTTPAddress = DefaultHTTPAddress
	}
	if s.MaxPlayers == 0 {
		s.MaxPlayers = DefaultMaxPlayers
	}
	if s.MaxMessageBytes == 0 {
		s.MaxMessageBytes = protocol.DefaultMaxMessageBytes
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}

	defaults := game.DefaultRules()
	r := c.Rules
	if r.StartingCash == 0 {
		r.StartingCash = defaults.StartingCash
	}
	if r.MinimumBet == 0 {
		r.MinimumBet = defaults.MinimumBet
	}
	if r.RefillCash == 0 {
		r.RefillCash = defaults.RefillCash
	}
	if r.MaxExchanges == 0 {
		r.MaxExchanges = defaults.MaxExchanges
	}
}

// GameRules converts the rules block into game limits.
func (c *Config) GameRules() game.Rules {
	rules := game.DefaultRules()
	rules.StartingCash = c.Rules.StartingCash
	rules.MinimumBet = c.Rules.MinimumBet
	rules.RefillCash = c.Rules.RefillCash
	rules.MaxExchanges = c.Rules.MaxExchanges
	return rules
}

// Validate validates the server configuration.
func (c *Config) Validate() error {
	s := c.Server
	if s.Address == "" {
		return fmt.Errorf("address is required")
	}
	if s.MaxPlayers < minTablePlayers || s.MaxPlayers > maxTablePlayers {
		return fmt.Errorf("max players must be between %d and %d, got %d", minTablePlayers, maxTablePlayers, s.MaxPlayers)
	}
	if s.MaxMessageBytes < 16 {
		return fmt.Errorf("max message bytes must be at least 16, got %d", s.MaxMessageBytes)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", s.LogLevel)
	}
	if err := c.GameRules().Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
