package agent

import (
	"context"

	"github.com/lox/cardbench/internal/game"
)

// First always plays the first legal action. It makes matches fully
// deterministic given a seed.
type First struct {
	name string
}

// NewFirst creates a first-legal-action agent
func NewFirst(name string) *First {
	return &First{name: name}
}

func (f *First) Name() string {
	return f.name
}

func (f *First) SelectAction(_ context.Context, _ []string, _ game.View, legal []game.Action) (game.Action, error) {
	if len(legal) == 0 {
		return nil, ErrNoLegalActions
	}
	return legal[0], nil
}
