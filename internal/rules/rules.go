// Package rules holds the plain-language rules handed to agents for each game.
package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
)

//go:embed rules/*.md
var files embed.FS

// ErrNoRules is returned for a game without a rules file
var ErrNoRules = errors.New("no rules for game")

// Load returns the rules text for the named game
func Load(name string) (string, error) {
	b, err := files.ReadFile("rules/" + name + ".md")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%q: %w", name, ErrNoRules)
	}
	if err != nil {
		return "", fmt.Errorf("read rules for %q: %w", name, err)
	}
	return string(b), nil
}
