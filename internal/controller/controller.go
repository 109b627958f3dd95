// Package controller drives a single match from deal to result.
//
// A match is single-threaded: the controller asks the current agent for an
// action, validates it and steps the game, until the game finishes or one of
// two safety valves trips. An agent whose faults exceed the error budget
// forfeits, and a match that reaches the turn cap is scored as a draw.
package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/eventlog"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/result"
)

var (
	// ErrNoAgents is returned when Run is given no agents
	ErrNoAgents = errors.New("no agents")
	// ErrSeatMismatch is returned when the agents do not fill the game's seats
	ErrSeatMismatch = errors.New("agent count does not match game seats")
	// ErrInvalidAction marks an agent proposing an action that fails validation
	ErrInvalidAction = errors.New("invalid action")
)

// Run plays g to completion with agents[i] controlling seat i. The game must
// not have been initialized. Engine contract violations are returned as
// errors; agent faults never are.
func Run(ctx context.Context, g game.Game, agents []agent.Agent, opts ...Option) (*result.GameResult, error) {
	cfg := newConfig(opts)
	if len(agents) == 0 {
		return nil, ErrNoAgents
	}
	seats := g.Agents()
	if len(seats) != len(agents) {
		return nil, fmt.Errorf("%d agents for %d seats: %w", len(agents), len(seats), ErrSeatMismatch)
	}
	for _, id := range seats {
		if int(id) < 0 || int(id) >= len(agents) {
			return nil, fmt.Errorf("seat %d has no agent: %w", id, ErrSeatMismatch)
		}
	}

	if err := g.Init(); err != nil {
		return nil, fmt.Errorf("init %s: %w", g.Name(), err)
	}

	m := &match{
		game:    g,
		agents:  agents,
		cfg:     cfg,
		cursors: eventlog.NewCursors[game.AgentID](g.Events()),
		faults:  make(map[game.AgentID]int, len(agents)),
		maxTurn: cfg.turnsPerAgent * len(agents),
	}
	return m.play(ctx)
}

type match struct {
	game    game.Game
	agents  []agent.Agent
	cfg     *config
	cursors *eventlog.Cursors[game.AgentID]
	faults  map[game.AgentID]int
	turns   int
	maxTurn int
}

func (m *match) play(ctx context.Context) (*result.GameResult, error) {
	logger := m.cfg.logger
	for !m.game.Done() {
		if m.turns >= m.maxTurn {
			logger.Debug("Turn cap reached", "game", m.game.Name(), "turns", m.turns)
			return m.finish(game.DrawScores(m.game.Agents()), fmt.Sprintf("Max turns (%d) reached", m.maxTurn)), nil
		}
		m.turns++

		id := m.game.CurrentAgent()
		events := m.cursors.Unread(id)
		legal := m.game.LegalActions(id)
		if len(legal) == 0 {
			logger.Warn("Agent has no legal actions", "game", m.game.Name(), "agent", id)
			return m.finish(game.DrawScores(m.game.Agents()), fmt.Sprintf("Agent %d has no legal actions", id)), nil
		}
		view := m.game.StateView(id)

		action, err := m.agents[id].SelectAction(ctx, events, view, legal)
		if err == nil && !m.game.Validate(id, action) {
			err = fmt.Errorf("%w: %v", ErrInvalidAction, action)
		}
		if err != nil {
			m.faults[id]++
			logger.Debug("Agent error", "agent", id, "name", m.agents[id].Name(), "count", m.faults[id], "error", err)
			if m.faults[id] > m.cfg.maxErrors {
				details := fmt.Sprintf("Agent %d reached max error count (%d errors)", id, m.faults[id])
				logger.Info("Agent forfeits", "agent", id, "name", m.agents[id].Name(), "errors", m.faults[id])
				return m.finish(game.ForfeitScores(m.game.Agents(), id), details), nil
			}
			action = legal[0]
		}

		if _, err := m.game.Step(action); err != nil {
			return nil, fmt.Errorf("%s turn %d: agent %d: %w", m.game.Name(), m.turns, id, err)
		}
	}

	scores, err := m.game.Scores()
	if err != nil {
		return nil, fmt.Errorf("%s scores: %w", m.game.Name(), err)
	}
	return m.finish(scores, m.game.Events().Last()), nil
}

// finish assembles the result with scores indexed by seat
func (m *match) finish(scores map[game.AgentID]float64, details string) *result.GameResult {
	r := &result.GameResult{
		Names:    make([]string, len(m.agents)),
		Scores:   make([]float64, len(m.agents)),
		EventLog: m.game.Events().Events(),
		Details:  details,
	}
	for i, a := range m.agents {
		r.Names[i] = a.Name()
		r.Scores[i] = scores[game.AgentID(i)]
	}
	return r
}

