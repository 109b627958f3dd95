package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Debug      bool             `help:"Enable debug logging"`
	Play       PlayCmd          `cmd:"" help:"Play a single match and print its events"`
	Tournament TournamentCmd    `cmd:"" help:"Run a tournament from an HCL config file"`
	Games      GamesCmd         `cmd:"" help:"List the available games"`
	Standings  StandingsCmd     `cmd:"" help:"Summarize a directory of match results"`
	Replay     ReplayCmd        `cmd:"" help:"Browse the event log of a saved match"`
}

func main() {
	// A missing .env is normal; the environment may already be set
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cardbench"),
		kong.Description("Benchmark card-game agents against each other"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	err := ctx.Run(logger)
	ctx.FatalIfErrorf(err)
}
