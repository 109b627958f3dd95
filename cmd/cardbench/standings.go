package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lox/cardbench/internal/result"
	"github.com/lox/cardbench/internal/standings"
	"github.com/lox/cardbench/internal/tui"
)

type StandingsCmd struct {
	Dir string `arg:"" type:"existingdir" help:"Directory of result artifacts"`
}

func (c *StandingsCmd) Run(logger *log.Logger) error {
	results, skipped, err := result.LoadDir(c.Dir)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		logger.Warn("Skipped result", "error", s)
	}
	if len(results) == 0 {
		return fmt.Errorf("no results in %s", c.Dir)
	}
	printStandings(os.Stdout, standings.Compute(results))
	return nil
}

func printStandings(w io.Writer, records []*standings.Record) {
	fmt.Fprintln(w, tui.HeaderStyle.Render(fmt.Sprintf("%-24s %6s %5s %5s %5s %6s %6s %6s %7s %17s",
		"AGENT", "GAMES", "WINS", "LOSS", "DRAW", "FAULTS", "WIN%", "ERR%", "MEAN", "95% CI")))
	for _, r := range records {
		lo, hi := r.Score.ConfidenceInterval95()
		mean := r.Score.Mean()
		fmt.Fprintf(w, "%-24s %6d %5d %5d %5d %6d %5.1f%% %5.1f%% %s %17s\n",
			r.Name, r.Games, r.Wins, r.Losses, r.Draws, r.ErrorLosses,
			r.WinRate()*100, r.ErrorLossRate()*100,
			tui.ScoreStyle(mean).Render(fmt.Sprintf("%7.3f", mean)),
			fmt.Sprintf("[%.3f, %.3f]", lo, hi))
	}
}
