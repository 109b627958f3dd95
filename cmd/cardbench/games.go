package main

import (
	"fmt"

	"github.com/lox/cardbench/internal/games"
	"github.com/lox/cardbench/internal/tui"
)

type GamesCmd struct{}

func (c *GamesCmd) Run() error {
	for _, name := range games.Names() {
		n, err := games.AgentCount(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", tui.HeaderStyle.Render(fmt.Sprintf("%-14s", name)), tui.MutedStyle.Render(fmt.Sprintf("%d agent(s)", n)))
	}
	return nil
}
