package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/eventlog"
)

// Base holds the bookkeeping shared by every engine. Engines embed it and
// keep their hands and piles in their own unexported fields.
type Base struct {
	name    string
	agents  []AgentID
	current int
	done    bool
	events  *eventlog.Log
}

// NewBase creates the shared state for a game called name
func NewBase(name string, agents []AgentID, events *eventlog.Log) Base {
	if events == nil {
		events = eventlog.New(nil)
	}
	return Base{
		name:   name,
		agents: slices.Clone(agents),
		events: events,
	}
}

// Name returns the registry name of the game
func (b *Base) Name() string {
	return b.name
}

// Agents returns a copy of the participating agent ids
func (b *Base) Agents() []AgentID {
	return slices.Clone(b.agents)
}

// NumAgents returns the number of participants
func (b *Base) NumAgents() int {
	return len(b.agents)
}

// CurrentAgent returns the agent to act, or NoAgent once the game is over
func (b *Base) CurrentAgent() AgentID {
	if b.done || len(b.agents) == 0 {
		return NoAgent
	}
	return b.agents[b.current]
}

// Done reports whether the game has finished
func (b *Base) Done() bool {
	return b.done
}

// Events returns the game's event log
func (b *Base) Events() *eventlog.Log {
	return b.events
}

// SetCurrent makes id the agent to act
func (b *Base) SetCurrent(id AgentID) {
	i := slices.Index(b.agents, id)
	if i < 0 {
		panic(fmt.Sprintf("game: agent %d is not seated", id))
	}
	b.current = i
}

// Advance passes the turn to the next seat and returns it
func (b *Base) Advance() AgentID {
	b.current = (b.current + 1) % len(b.agents)
	return b.agents[b.current]
}

// Finish marks the game as over. A game finishes exactly once.
func (b *Base) Finish() {
	if b.done {
		panic("game: finished twice")
	}
	b.done = true
}

// Next returns the value Step reports: the agent to act, or NoAgent
func (b *Base) Next() AgentID {
	return b.CurrentAgent()
}

// IsTurn reports whether id may act right now
func (b *Base) IsTurn(id AgentID) bool {
	return !b.done && id == b.CurrentAgent()
}

// Opponents returns every agent other than id, in seat order
func (b *Base) Opponents(id AgentID) []AgentID {
	out := make([]AgentID, 0, len(b.agents)-1)
	for _, a := range b.agents {
		if a != id {
			out = append(out, a)
		}
	}
	return out
}

// CheckStep returns the contract-violation error for stepping a with the
// given legal set, or nil when the step is allowed.
func (b *Base) CheckStep(legal []Action, a Action) error {
	if b.done {
		return fmt.Errorf("%s: step %v: %w", b.name, a, ErrGameOver)
	}
	if !Contains(legal, a) {
		return fmt.Errorf("%s: agent %d: %v: %w", b.name, b.CurrentAgent(), a, ErrIllegalAction)
	}
	return nil
}

// DiscardLogger returns logger, or a logger that drops everything when nil
func DiscardLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
