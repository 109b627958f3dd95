package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lox/cardbench/internal/result"
	"github.com/lox/cardbench/internal/tui"
)

type ReplayCmd struct {
	File  string `arg:"" type:"existingfile" help:"Result artifact to browse"`
	Plain bool   `help:"Print the events instead of opening the viewer"`
}

func (c *ReplayCmd) Run() error {
	r, err := result.Load(c.File)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.File, err)
	}
	title := strings.TrimSuffix(filepath.Base(c.File), ".json")
	if c.Plain {
		printEvents(title, r)
		return nil
	}
	return tui.RunReplay(title, r)
}
