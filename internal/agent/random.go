package agent

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/game"
)

// Random picks a uniformly random legal action
type Random struct {
	name   string
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a random agent drawing from rng
func NewRandom(name string, rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{name: name, rng: rng, logger: game.DiscardLogger(logger)}
}

func (r *Random) Name() string {
	return r.name
}

func (r *Random) SelectAction(_ context.Context, _ []string, _ game.View, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalActions
	}
	choice := legal[r.rng.IntN(len(legal))]
	r.logger.Debug("Random choice", "agent", r.name, "action", choice, "options", len(legal))
	return choice, nil
}
