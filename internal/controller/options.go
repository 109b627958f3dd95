package controller

import (
	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/game"
)

const (
	// DefaultMaxErrors is the number of agent faults tolerated before forfeit
	DefaultMaxErrors = 3
	// DefaultTurnsPerAgent times the agent count caps the turns of a match
	DefaultTurnsPerAgent = 50
)

// Option configures a match run
type Option func(*config)

// config holds the settings for one Run
type config struct {
	logger        *log.Logger
	maxErrors     int // Default: 3
	turnsPerAgent int // Default: 50
}

func newConfig(opts []Option) *config {
	cfg := &config{
		maxErrors:     DefaultMaxErrors,
		turnsPerAgent: DefaultTurnsPerAgent,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.logger = game.DiscardLogger(cfg.logger)
	return cfg
}

// WithLogger sets the logger for agent faults and match outcomes
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMaxErrors sets the error budget. An agent forfeits once its fault
// count exceeds n.
func WithMaxErrors(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxErrors = n
		}
	}
}

// WithTurnsPerAgent sets the turn cap as a multiple of the agent count
func WithTurnsPerAgent(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.turnsPerAgent = n
		}
	}
}
