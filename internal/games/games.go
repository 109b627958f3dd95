// Package games maps game names to their engines.
package games

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/game/blackjack"
	"github.com/lox/cardbench/internal/game/crazyeights"
	"github.com/lox/cardbench/internal/game/ginrummy"
	"github.com/lox/cardbench/internal/game/gofish"
)

// ErrUnknownGame is returned for a name with no registered engine
var ErrUnknownGame = errors.New("unknown game")

type entry struct {
	agents int
	build  func([]game.AgentID, *rand.Rand, *log.Logger) (game.Game, error)
}

var registry = map[string]entry{
	blackjack.Name: {1, func(ids []game.AgentID, rng *rand.Rand, l *log.Logger) (game.Game, error) {
		return blackjack.New(ids, rng, l)
	}},
	crazyeights.Name: {2, func(ids []game.AgentID, rng *rand.Rand, l *log.Logger) (game.Game, error) {
		return crazyeights.New(ids, rng, l)
	}},
	ginrummy.Name: {2, func(ids []game.AgentID, rng *rand.Rand, l *log.Logger) (game.Game, error) {
		return ginrummy.New(ids, rng, l)
	}},
	gofish.Name: {2, func(ids []game.AgentID, rng *rand.Rand, l *log.Logger) (game.Game, error) {
		return gofish.New(ids, rng, l)
	}},
}

// Names returns every registered game in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AgentCount returns how many agents a match of name seats
func AgentCount(name string) (int, error) {
	e, ok := registry[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownGame)
	}
	return e.agents, nil
}

// New builds an uninitialized game of the named kind
func New(name string, agents []game.AgentID, rng *rand.Rand, logger *log.Logger) (game.Game, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownGame)
	}
	g, err := e.build(agents, rng, logger)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}
	return g, nil
}
