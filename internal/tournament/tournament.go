// Package tournament runs many independent matches between a roster of
// agents under a bounded worker pool.
package tournament

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/controller"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/games"
	"github.com/lox/cardbench/internal/randutil"
	"github.com/lox/cardbench/internal/result"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrRosterTooSmall is returned when there are too few agents to fill a match
	ErrRosterTooSmall = errors.New("roster too small")
	// ErrMatchPanic wraps a panic recovered from a match
	ErrMatchPanic = errors.New("match panicked")
	// ErrMatchInterrupted is returned for a match cut short by cancellation
	ErrMatchInterrupted = errors.New("match interrupted")
)

// Sink persists finished matches
type Sink interface {
	Save(gameName string, r *result.GameResult) (string, error)
}

// Config holds configuration for a tournament
type Config struct {
	Game          string
	Roster        []agent.Spec
	Matches       int
	Workers       int
	Seed          int64
	MaxErrors     int
	TurnsPerAgent int
	Logger        *log.Logger
	Clock         quartz.Clock
	// OnMatchDone, when set, is called after every match. Calls never overlap.
	OnMatchDone func(Progress)
}

// Progress counts finished matches out of the total scheduled
type Progress struct {
	Completed int
	Failed    int
	Total     int
}

// Summary reports how a tournament went
type Summary struct {
	Scheduled int
	Completed int
	Failed    int
	Duration  time.Duration
}

// Runner plays the matches of one tournament
type Runner struct {
	config  Config
	factory *agent.Factory
	sink    Sink
}

// New creates a runner. Agents are built by factory and results go to sink.
func New(config Config, factory *agent.Factory, sink Sink) *Runner {
	config.Logger = game.DiscardLogger(config.Logger)
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Runner{config: config, factory: factory, sink: sink}
}

// Pairings returns every unordered pair (i < j) of roster, repeated in order
// until there are n, then cut to exactly n.
func Pairings[T any](roster []T, n int) [][2]T {
	var pairs [][2]T
	for i := range roster {
		for j := i + 1; j < len(roster); j++ {
			pairs = append(pairs, [2]T{roster[i], roster[j]})
		}
	}
	if len(pairs) == 0 || n <= 0 {
		return nil
	}
	out := make([][2]T, 0, n)
	for len(out) < n {
		out = append(out, pairs[:min(len(pairs), n-len(out))]...)
	}
	return out
}

// Lineups returns the seatings for n matches of a game with the given number
// of seats: pairings for two seats, each roster entry in turn for one.
func Lineups[T any](roster []T, seats, n int) ([][]T, error) {
	switch seats {
	case 1:
		if len(roster) == 0 {
			return nil, fmt.Errorf("need at least 1 agent: %w", ErrRosterTooSmall)
		}
		out := make([][]T, n)
		for i := range out {
			out[i] = []T{roster[i%len(roster)]}
		}
		return out, nil
	case 2:
		if len(roster) < 2 {
			return nil, fmt.Errorf("need at least 2 agents, have %d: %w", len(roster), ErrRosterTooSmall)
		}
		pairs := Pairings(roster, n)
		out := make([][]T, len(pairs))
		for i, p := range pairs {
			out[i] = []T{p[0], p[1]}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%d seats per match is not supported", seats)
	}
}

// Run plays every match and waits for them to finish. A failed match is
// logged and counted and never stops the others. Cancelling ctx stops new
// matches from starting. Matches it interrupts are discarded and counted as
// failed.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	seats, err := games.AgentCount(r.config.Game)
	if err != nil {
		return Summary{}, err
	}
	lineups, err := Lineups(r.config.Roster, seats, r.config.Matches)
	if err != nil {
		return Summary{}, err
	}

	logger := r.config.Logger
	start := r.config.Clock.Now()
	logger.Info("Starting tournament", "game", r.config.Game, "matches", len(lineups), "workers", r.config.Workers)

	var (
		mu       sync.Mutex
		progress = Progress{Total: len(lineups)}
	)
	done := func(ok bool) {
		mu.Lock()
		defer mu.Unlock()
		if ok {
			progress.Completed++
		} else {
			progress.Failed++
		}
		if r.config.OnMatchDone != nil {
			r.config.OnMatchDone(progress)
		}
	}

	var eg errgroup.Group
	eg.SetLimit(r.config.Workers)

	scheduled := 0
	for i, lineup := range lineups {
		if ctx.Err() != nil {
			break
		}
		scheduled++
		eg.Go(func() error {
			path, err := r.runMatch(ctx, i, lineup)
			if err != nil {
				logger.Error("Match failed", "match", i, "error", err)
				done(false)
				return nil
			}
			done(true)
			logger.Debug("Match saved", "match", i, "path", path)
			return nil
		})
	}
	_ = eg.Wait()

	summary := Summary{
		Scheduled: scheduled,
		Completed: progress.Completed,
		Failed:    progress.Failed,
		Duration:  r.config.Clock.Since(start),
	}
	logger.Info("Tournament finished", "completed", summary.Completed, "failed", summary.Failed, "duration", summary.Duration)
	return summary, ctx.Err()
}

// runMatch plays and saves match i. Every match derives its own seed so a
// tournament seed reproduces each match regardless of scheduling order.
func (r *Runner) runMatch(ctx context.Context, i int, lineup []agent.Spec) (path string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrMatchPanic, p)
		}
	}()

	seed := randutil.Derive(r.config.Seed, i)
	logger := r.config.Logger.With("match", i)

	g, err := games.New(r.config.Game, game.Seats(len(lineup)), randutil.New(seed), logger)
	if err != nil {
		return "", err
	}
	agents := make([]agent.Agent, len(lineup))
	for seat, spec := range lineup {
		a, err := r.factory.Build(spec, r.config.Game, randutil.New(randutil.Derive(seed, seat)))
		if err != nil {
			return "", fmt.Errorf("build agent %d: %w", seat, err)
		}
		agents[seat] = a
	}

	res, err := controller.Run(ctx, g, agents,
		controller.WithLogger(logger),
		controller.WithMaxErrors(r.config.MaxErrors),
		controller.WithTurnsPerAgent(r.config.TurnsPerAgent),
	)
	if err != nil {
		return "", err
	}
	// Agents fault on a cancelled context, so the result says nothing
	// about their play.
	if ctx.Err() != nil {
		return "", fmt.Errorf("%w: %w", ErrMatchInterrupted, context.Cause(ctx))
	}
	return r.sink.Save(r.config.Game, res)
}
