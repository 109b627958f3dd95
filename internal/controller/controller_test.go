package controller

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/eventlog"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/game/blackjack"
	"github.com/lox/cardbench/internal/game/ginrummy"
	"github.com/lox/cardbench/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tick struct{ n int }

func (t tick) String() string { return fmt.Sprintf("tick %d", t.n) }

type counterView struct{ Steps int }

func (v counterView) String() string { return fmt.Sprintf("steps=%d", v.Steps) }

// counterGame alternates two agents and finishes after limit steps; a zero
// limit never finishes.
type counterGame struct {
	game.Base
	limit   int
	steps   int
	stuck   bool
	stepErr error
}

func newCounter(agents, limit int) *counterGame {
	return &counterGame{Base: game.NewBase("counter", game.Seats(agents), eventlog.New(nil)), limit: limit}
}

func (g *counterGame) Init() error {
	g.SetCurrent(0)
	g.Events().Push("start")
	return nil
}

func (g *counterGame) Step(a game.Action) (game.AgentID, error) {
	if g.stepErr != nil {
		return game.NoAgent, g.stepErr
	}
	if err := g.CheckStep(g.LegalActions(g.CurrentAgent()), a); err != nil {
		return game.NoAgent, err
	}
	g.steps++
	g.Events().Pushf("[Agent %d] %s", g.CurrentAgent(), a)
	if g.limit > 0 && g.steps >= g.limit {
		g.Events().Push("counter finished")
		g.Finish()
		return g.Next(), nil
	}
	return g.Advance(), nil
}

func (g *counterGame) LegalActions(id game.AgentID) []game.Action {
	if !g.IsTurn(id) || g.stuck {
		return nil
	}
	return []game.Action{tick{0}, tick{1}}
}

func (g *counterGame) Validate(id game.AgentID, a game.Action) bool {
	return game.Contains(g.LegalActions(id), a)
}

func (g *counterGame) StateView(game.AgentID) game.View { return counterView{g.steps} }

func (g *counterGame) Scores() (map[game.AgentID]float64, error) {
	if !g.Done() {
		return nil, game.ErrNotDone
	}
	return game.WinnerScores(g.Agents(), 0), nil
}

// scripted returns a fixed action or error and records what it saw
type scripted struct {
	name   string
	action game.Action
	err    error
	calls  int
	events [][]string
}

func (s *scripted) Name() string { return s.name }

func (s *scripted) SelectAction(_ context.Context, events []string, _ game.View, _ []game.Action) (game.Action, error) {
	s.calls++
	s.events = append(s.events, events)
	return s.action, s.err
}

func TestNaturalEnd(t *testing.T) {
	t.Parallel()
	a0 := &scripted{name: "a", action: tick{1}}
	a1 := &scripted{name: "b", action: tick{0}}

	r, err := Run(context.Background(), newCounter(2, 4), []agent.Agent{a0, a1})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Names)
	assert.Equal(t, []float64{1, 0}, r.Scores)
	assert.Equal(t, "counter finished", r.Details)
	assert.Equal(t, 2, a0.calls)
	assert.Equal(t, 2, a1.calls)
}

func TestEventsDeliveredOnce(t *testing.T) {
	t.Parallel()
	a0 := &scripted{name: "a", action: tick{1}}
	a1 := &scripted{name: "b", action: tick{0}}

	_, err := Run(context.Background(), newCounter(2, 3), []agent.Agent{a0, a1})
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"start"},
		{"[Agent 0] tick 1", "[Agent 1] tick 0"},
	}, a0.events)
	assert.Equal(t, [][]string{
		{"start", "[Agent 0] tick 1"},
	}, a1.events)
}

func TestTurnCapForcesDraw(t *testing.T) {
	t.Parallel()
	a0 := &scripted{name: "a", action: tick{0}}
	a1 := &scripted{name: "b", action: tick{0}}
	g := newCounter(2, 0)

	r, err := Run(context.Background(), g, []agent.Agent{a0, a1}, WithTurnsPerAgent(5))
	require.NoError(t, err)
	assert.Equal(t, "Max turns (10) reached", r.Details)
	assert.Equal(t, []float64{0.5, 0.5}, r.Scores)
	assert.Equal(t, 10, g.steps, "never plays past the cap")
	assert.Equal(t, 10, a0.calls+a1.calls)
}

func TestDefaultTurnCap(t *testing.T) {
	t.Parallel()
	g := newCounter(2, 0)
	r, err := Run(context.Background(), g, []agent.Agent{
		&scripted{name: "a", action: tick{0}},
		&scripted{name: "b", action: tick{0}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Max turns (100) reached", r.Details)
	assert.Equal(t, 100, g.steps)
}

func TestErrorBudgetForfeits(t *testing.T) {
	t.Parallel()
	bad := &scripted{name: "bad", action: tick{7}}
	good := &scripted{name: "good", action: tick{0}}
	g := newCounter(2, 0)

	r, err := Run(context.Background(), g, []agent.Agent{good, bad})
	require.NoError(t, err)
	assert.Equal(t, "Agent 1 reached max error count (4 errors)", r.Details)
	assert.Equal(t, []float64{1, 0}, r.Scores)
	assert.Equal(t, 4, bad.calls)
	assert.Equal(t, 3, g.steps-good.calls, "the fallback action is played for each tolerated fault")
}

func TestAgentErrorsFallBackToFirstAction(t *testing.T) {
	t.Parallel()
	flaky := &scripted{name: "flaky", err: errors.New("timeout")}
	g := newCounter(1, 3)

	r, err := Run(context.Background(), g, []agent.Agent{flaky}, WithMaxErrors(5))
	require.NoError(t, err)
	assert.Equal(t, "counter finished", r.Details)
	assert.Equal(t, []string{"start", "[Agent 0] tick 0", "[Agent 0] tick 0", "[Agent 0] tick 0", "counter finished"}, r.EventLog)
}

func TestZeroBudgetForfeitsOnFirstFault(t *testing.T) {
	t.Parallel()
	r, err := Run(context.Background(), newCounter(1, 3), []agent.Agent{&scripted{name: "x", action: nil}}, WithMaxErrors(0))
	require.NoError(t, err)
	assert.Equal(t, "Agent 0 reached max error count (1 errors)", r.Details)
	assert.Equal(t, []float64{0}, r.Scores)
}

func TestEmptyLegalActionsEndsInDraw(t *testing.T) {
	t.Parallel()
	g := newCounter(2, 0)
	g.stuck = true
	a0 := &scripted{name: "a", action: tick{0}}

	r, err := Run(context.Background(), g, []agent.Agent{a0, &scripted{name: "b"}})
	require.NoError(t, err)
	assert.Equal(t, "Agent 0 has no legal actions", r.Details)
	assert.Equal(t, []float64{0.5, 0.5}, r.Scores)
	assert.Zero(t, a0.calls, "a stuck agent is never consulted")
}

func TestStepErrorIsFatal(t *testing.T) {
	t.Parallel()
	g := newCounter(2, 0)
	g.stepErr = fmt.Errorf("counter: %w", game.ErrIllegalAction)

	_, err := Run(context.Background(), g, []agent.Agent{
		&scripted{name: "a", action: tick{0}},
		&scripted{name: "b", action: tick{0}},
	})
	assert.ErrorIs(t, err, game.ErrIllegalAction)
}

func TestSeatValidation(t *testing.T) {
	t.Parallel()
	_, err := Run(context.Background(), newCounter(2, 1), nil)
	assert.ErrorIs(t, err, ErrNoAgents)
	_, err = Run(context.Background(), newCounter(2, 1), []agent.Agent{&scripted{}})
	assert.ErrorIs(t, err, ErrSeatMismatch)
}

func TestRandomAgentsFinishRealGames(t *testing.T) {
	t.Parallel()
	for seed := range int64(10) {
		rng := randutil.New(seed)
		g, err := ginrummy.New(game.Seats(2), rng, nil)
		require.NoError(t, err)

		r, err := Run(context.Background(), g, []agent.Agent{
			agent.NewRandom("r0", rng, nil),
			agent.NewRandom("r1", rng, nil),
		})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, r.Scores[0]+r.Scores[1], 1e-9)
		assert.NotEmpty(t, r.EventLog)
	}

	g, err := blackjack.New(game.Seats(1), randutil.New(3), nil)
	require.NoError(t, err)
	r, err := Run(context.Background(), g, []agent.Agent{agent.NewFirst("hitter")})
	require.NoError(t, err)
	assert.Contains(t, []float64{0, 0.5, 1}, r.Scores[0])
}
