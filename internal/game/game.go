package game

import (
	"errors"
	"fmt"

	"github.com/lox/cardbench/internal/eventlog"
)

// AgentID identifies a seat in a game. Seats are numbered from zero.
type AgentID int

// NoAgent is returned by Step once the game is over
const NoAgent AgentID = -1

var (
	// ErrGameOver is returned by Step once the game has finished
	ErrGameOver = errors.New("game already finished")
	// ErrIllegalAction is returned by Step for an action outside LegalActions
	ErrIllegalAction = errors.New("illegal action")
	// ErrNotDone is returned by Scores before the game has finished
	ErrNotDone = errors.New("game not finished")
	// ErrAgentCount is returned by constructors given an unsupported number of agents
	ErrAgentCount = errors.New("unsupported number of agents")
)

// Action is one game-specific move. Implementations are comparable structs so
// that two actions describing the same move are equal under ==.
type Action interface {
	fmt.Stringer
}

// View is an agent-scoped projection of the game state. Implementations are
// JSON-serialisable structs.
type View interface {
	fmt.Stringer
}

// Game is the turn-based state machine every engine implements
type Game interface {
	// Name returns the registry name of the game, e.g. "gin_rummy"
	Name() string
	// Agents returns the seats taking part
	Agents() []AgentID
	// Init deals and sets the first actor. It may finish the game immediately.
	Init() error
	// Step applies a legal action for the current agent and returns the next
	// agent, or NoAgent when the game is over.
	Step(a Action) (AgentID, error)
	// CurrentAgent returns the agent to act, or NoAgent when done
	CurrentAgent() AgentID
	// Done reports whether the game has finished
	Done() bool
	// LegalActions returns the moves available to id; it may be empty
	LegalActions(id AgentID) []Action
	// StateView returns what id is entitled to see
	StateView(id AgentID) View
	// Scores returns each agent's score in [0, 1]; valid once Done
	Scores() (map[AgentID]float64, error)
	// Validate reports whether a is in LegalActions(id)
	Validate(id AgentID, a Action) bool
	// Events returns the game's event log
	Events() *eventlog.Log
}

// Contains reports whether actions includes a
func Contains(actions []Action, a Action) bool {
	if a == nil {
		return false
	}
	for _, candidate := range actions {
		if candidate == a {
			return true
		}
	}
	return false
}

// Seats returns agent ids 0..n-1
func Seats(n int) []AgentID {
	ids := make([]AgentID, n)
	for i := range ids {
		ids[i] = AgentID(i)
	}
	return ids
}
