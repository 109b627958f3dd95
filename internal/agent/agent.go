// Package agent defines the players that choose moves for a match and the
// factory that builds them from configuration.
package agent

import (
	"context"
	"errors"

	"github.com/lox/cardbench/internal/game"
)

// ErrNoLegalActions is returned when an agent is asked to choose from nothing
var ErrNoLegalActions = errors.New("no legal actions to choose from")

// Agent chooses one action per turn. newEvents holds the match events since
// the agent last acted. Any error counts as an agent fault.
type Agent interface {
	SelectAction(ctx context.Context, newEvents []string, view game.View, legal []game.Action) (game.Action, error)
	Name() string
}
