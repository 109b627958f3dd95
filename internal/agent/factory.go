package agent

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/rules"
)

// Agent types accepted in a Spec
const (
	TypeRandom = "random"
	TypeFirst  = "first"
	TypeLLM    = "llm"
)

var (
	// ErrUnknownType is returned for a Spec naming no known agent type
	ErrUnknownType = errors.New("unknown agent type")
	// ErrNoModel is returned for an LLM Spec without a model
	ErrNoModel = errors.New("llm agent needs a model")
	// ErrNoClient is returned when an LLM agent is built without a client
	ErrNoClient = errors.New("llm agent needs a client")
)

// Spec describes one roster entry
type Spec struct {
	Type  string
	Name  string
	Model string
}

// DisplayName is the name recorded in results: Name when set, otherwise
// the model for LLM agents and the type for the rest.
func (s Spec) DisplayName() string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Type == TypeLLM && s.Model != "":
		return s.Model
	default:
		return s.Type
	}
}

// Validate checks the spec can be built
func (s Spec) Validate() error {
	switch s.Type {
	case TypeRandom, TypeFirst:
		return nil
	case TypeLLM:
		if s.Model == "" {
			return ErrNoModel
		}
		return nil
	default:
		return fmt.Errorf("%q: %w", s.Type, ErrUnknownType)
	}
}

// Deps are the process-wide collaborators agents are built from
type Deps struct {
	Chatter Chatter
	Logger  *log.Logger
}

// Factory builds fresh agents for each match
type Factory struct {
	deps Deps
}

// NewFactory creates a factory sharing deps across every agent it builds
func NewFactory(deps Deps) *Factory {
	deps.Logger = game.DiscardLogger(deps.Logger)
	return &Factory{deps: deps}
}

// Build creates the agent for spec in a match of gameName. Random agents draw
// from rng, which the caller derives per match.
func (f *Factory) Build(spec Spec, gameName string, rng *rand.Rand) (Agent, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	name := spec.DisplayName()
	switch spec.Type {
	case TypeRandom:
		return NewRandom(name, rng, f.deps.Logger), nil
	case TypeFirst:
		return NewFirst(name), nil
	default:
		if f.deps.Chatter == nil {
			return nil, ErrNoClient
		}
		text, err := rules.Load(gameName)
		if err != nil {
			return nil, err
		}
		return NewLLM(name, spec.Model, gameName, text, f.deps.Chatter, f.deps.Logger.With("agent", name))
	}
}
