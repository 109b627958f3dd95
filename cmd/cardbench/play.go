package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/controller"
	"github.com/lox/cardbench/internal/game"
	"github.com/lox/cardbench/internal/games"
	"github.com/lox/cardbench/internal/randutil"
	"github.com/lox/cardbench/internal/result"
	"github.com/lox/cardbench/internal/tui"
)

type PlayCmd struct {
	Game          string   `arg:"" help:"Game to play (see 'cardbench games')"`
	Agents        []string `short:"a" default:"random,random" help:"Agents as type[:model][=name], e.g. llm:openai/gpt-4o-mini"`
	Seed          *int64   `help:"Seed for a reproducible match"`
	MaxErrors     int      `default:"3" help:"Faults tolerated before an agent forfeits"`
	TurnsPerAgent int      `default:"50" help:"Turn cap per agent before the match is drawn"`
	Save          string   `type:"path" help:"Directory to write the result artifact to"`
}

func (c *PlayCmd) Run(logger *log.Logger) error {
	seats, err := games.AgentCount(c.Game)
	if err != nil {
		return err
	}
	specs, err := parseAgents(c.Agents)
	if err != nil {
		return err
	}
	if len(specs) > seats {
		specs = specs[:seats]
	}
	if len(specs) != seats {
		return fmt.Errorf("%s needs %d agents, got %d", c.Game, seats, len(specs))
	}

	factory, err := newFactory(specs, logger)
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	logger.Debug("Starting match", "game", c.Game, "seed", seed)

	g, err := games.New(c.Game, game.Seats(seats), randutil.New(seed), logger)
	if err != nil {
		return err
	}
	agents := make([]agent.Agent, seats)
	for i, spec := range specs {
		if agents[i], err = factory.Build(spec, c.Game, randutil.New(randutil.Derive(seed, i))); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := controller.Run(ctx, g, agents,
		controller.WithLogger(logger),
		controller.WithMaxErrors(c.MaxErrors),
		controller.WithTurnsPerAgent(c.TurnsPerAgent),
	)
	if err != nil {
		return err
	}

	printEvents(fmt.Sprintf("%s (seed %d)", c.Game, seed), res)

	if c.Save != "" {
		path, err := result.NewFileSink(c.Save).Save(c.Game, res)
		if err != nil {
			return err
		}
		logger.Info("Saved result", "path", path)
	}
	return nil
}

func printEvents(title string, res *result.GameResult) {
	fmt.Println(tui.TitleStyle.Render(title))
	fmt.Println()
	for i, e := range res.EventLog {
		fmt.Printf("%s %s\n", tui.MutedStyle.Render(fmt.Sprintf("%4d", i+1)), tui.EventStyle.Render(e))
	}
	fmt.Println()
	for i, name := range res.Names {
		fmt.Printf("%s %s\n", tui.HeaderStyle.Render(name), tui.ScoreStyle(res.Scores[i]).Render(fmt.Sprintf("%.1f", res.Scores[i])))
	}
	if res.Details != "" {
		fmt.Println(tui.MutedStyle.Render(res.Details))
	}
}
