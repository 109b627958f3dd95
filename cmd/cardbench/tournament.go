package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/config"
	"github.com/lox/cardbench/internal/result"
	"github.com/lox/cardbench/internal/standings"
	"github.com/lox/cardbench/internal/tournament"
	"github.com/lox/cardbench/internal/tui"
)

type TournamentCmd struct {
	Config    string `arg:"" type:"existingfile" help:"HCL tournament config"`
	Matches   int    `help:"Override the number of matches"`
	Workers   int    `help:"Override the number of concurrent matches"`
	OutputDir string `type:"path" help:"Override the results directory"`
	Seed      *int64 `help:"Override the tournament seed"`
}

func (c *TournamentCmd) Run(logger *log.Logger) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Matches > 0 {
		cfg.Matches = c.Matches
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if c.Seed != nil {
		cfg.Seed = c.Seed
	}

	factory, err := newFactory(cfg.Roster(), logger)
	if err != nil {
		return err
	}

	tc := cfg.Tournament()
	tc.Logger = logger
	progress := newProgressMonitor(os.Stdout)
	tc.OnMatchDone = progress.OnMatchDone
	logger.Info("Loaded config", "file", c.Config, "seed", tc.Seed, "output", cfg.OutputDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := tournament.New(tc, factory, result.NewFileSink(cfg.OutputDir)).Run(ctx)
	progress.Finish()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println(tui.TitleStyle.Render(cfg.Game+" tournament"))
	fmt.Printf("Scheduled %d, completed %s, failed %s in %s\n",
		summary.Scheduled,
		tui.WinStyle.Render(fmt.Sprint(summary.Completed)),
		tui.LossStyle.Render(fmt.Sprint(summary.Failed)),
		summary.Duration.Round(time.Millisecond))
	if err != nil {
		logger.Warn("Tournament interrupted")
	}

	results, skipped, err := result.LoadDir(cfg.OutputDir)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		logger.Warn("Skipped result", "error", s)
	}
	fmt.Println()
	printStandings(os.Stdout, standings.Compute(results))
	return nil
}
