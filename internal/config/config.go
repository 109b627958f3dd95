// Package config loads tournament configuration from HCL files.
package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/controller"
	"github.com/lox/cardbench/internal/games"
	"github.com/lox/cardbench/internal/randutil"
	"github.com/lox/cardbench/internal/tournament"
)

// Defaults for optional settings
const (
	DefaultMatches   = 10
	DefaultWorkers   = 4
	DefaultOutputDir = "results"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config represents a tournament configuration file
type Config struct {
	Game          string        `hcl:"game"`
	Matches       int           `hcl:"matches,optional"`
	Workers       int           `hcl:"workers,optional"`
	OutputDir     string        `hcl:"output_dir,optional"`
	Seed          *int64        `hcl:"seed,optional"`
	MaxErrors     *int          `hcl:"max_errors,optional"`
	TurnsPerAgent int           `hcl:"turns_per_agent,optional"`
	Agents        []AgentConfig `hcl:"agent,block"`
}

// AgentConfig is one roster entry, labelled by agent type
type AgentConfig struct {
	Type  string `hcl:"type,label"`
	Name  string `hcl:"name,optional"`
	Model string `hcl:"model,optional"`
}

// Spec converts the block into an agent spec
func (a AgentConfig) Spec() agent.Spec {
	return agent.Spec{Type: a.Type, Name: a.Name, Model: a.Model}
}

// Load reads, defaults and validates the configuration in filename
func Load(filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file.Body)
}

// Parse is Load for configuration already in memory
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) (*Config, error) {
	var config Config
	if diags := gohcl.DecodeBody(body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Matches == 0 {
		c.Matches = DefaultMatches
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.MaxErrors == nil {
		n := controller.DefaultMaxErrors
		c.MaxErrors = &n
	}
	if c.TurnsPerAgent == 0 {
		c.TurnsPerAgent = controller.DefaultTurnsPerAgent
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	seats, err := games.AgentCount(c.Game)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Matches <= 0 {
		return fmt.Errorf("%w: matches must be positive", ErrInvalid)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalid)
	}
	if c.MaxErrors != nil && *c.MaxErrors < 0 {
		return fmt.Errorf("%w: max_errors cannot be negative", ErrInvalid)
	}
	if c.TurnsPerAgent < 0 {
		return fmt.Errorf("%w: turns_per_agent cannot be negative", ErrInvalid)
	}
	if len(c.Agents) < seats {
		return fmt.Errorf("%w: %s needs at least %d agent blocks, have %d", ErrInvalid, c.Game, seats, len(c.Agents))
	}

	names := make(map[string]bool, len(c.Agents))
	for i, a := range c.Agents {
		spec := a.Spec()
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("%w: agent %d: %w", ErrInvalid, i, err)
		}
		name := spec.DisplayName()
		if names[name] {
			return fmt.Errorf("%w: duplicate agent name %q", ErrInvalid, name)
		}
		names[name] = true
	}
	return nil
}

// Roster returns the agent specs in file order
func (c *Config) Roster() []agent.Spec {
	specs := make([]agent.Spec, len(c.Agents))
	for i, a := range c.Agents {
		specs[i] = a.Spec()
	}
	return specs
}

// Tournament converts the file into runner configuration. A missing seed is
// replaced with a random one.
func (c *Config) Tournament() tournament.Config {
	maxErrors := controller.DefaultMaxErrors
	if c.MaxErrors != nil {
		maxErrors = *c.MaxErrors
	}
	return tournament.Config{
		Game:          c.Game,
		Roster:        c.Roster(),
		Matches:       c.Matches,
		Workers:       c.Workers,
		Seed:          randutil.Seed(c.Seed),
		MaxErrors:     maxErrors,
		TurnsPerAgent: c.TurnsPerAgent,
	}
}
