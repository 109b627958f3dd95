package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lox/cardbench/internal/agent"
	"github.com/lox/cardbench/internal/games"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const full = `
game       = "gin_rummy"
matches    = 200
workers    = 10
output_dir = "results/gin_rummy_v1"
seed       = 42
max_errors = 5
turns_per_agent = 30

agent "random" {}
agent "llm" {
  name  = "mini"
  model = "openai/gpt-4o-mini"
}
`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tournament.hcl")
	require.NoError(t, os.WriteFile(path, []byte(full), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gin_rummy", cfg.Game)
	assert.Equal(t, 200, cfg.Matches)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, "results/gin_rummy_v1", cfg.OutputDir)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, 5, *cfg.MaxErrors)
	assert.Equal(t, 30, cfg.TurnsPerAgent)
	assert.Equal(t, []agent.Spec{
		{Type: "random"},
		{Type: "llm", Name: "mini", Model: "openai/gpt-4o-mini"},
	}, cfg.Roster())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
game = "crazy_eights"
agent "random" {}
agent "first" {}
`), "test.hcl")
	require.NoError(t, err)

	assert.Equal(t, DefaultMatches, cfg.Matches)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, 3, *cfg.MaxErrors)
	assert.Equal(t, 50, cfg.TurnsPerAgent)
}

func TestZeroMaxErrorsIsKept(t *testing.T) {
	cfg, err := Parse([]byte(`
game = "go_fish"
max_errors = 0
agent "random" {}
agent "first" {}
`), "test.hcl")
	require.NoError(t, err)
	assert.Equal(t, 0, *cfg.MaxErrors)
	assert.Equal(t, 0, cfg.Tournament().MaxErrors)
}

func TestTournament(t *testing.T) {
	cfg, err := Parse([]byte(full), "test.hcl")
	require.NoError(t, err)

	tc := cfg.Tournament()
	assert.Equal(t, "gin_rummy", tc.Game)
	assert.Equal(t, int64(42), tc.Seed)
	assert.Equal(t, 200, tc.Matches)
	assert.Equal(t, 10, tc.Workers)
	assert.Equal(t, 5, tc.MaxErrors)
	assert.Equal(t, 30, tc.TurnsPerAgent)
	assert.Len(t, tc.Roster, 2)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown game", `
game = "snap"
agent "random" {}
agent "first" {}
`},
		{"negative matches", `
game = "gin_rummy"
matches = -1
agent "random" {}
agent "first" {}
`},
		{"negative max errors", `
game = "gin_rummy"
max_errors = -1
agent "random" {}
agent "first" {}
`},
		{"too few agents", `
game = "gin_rummy"
agent "random" {}
`},
		{"unknown agent type", `
game = "gin_rummy"
agent "random" {}
agent "oracle" {}
`},
		{"llm without model", `
game = "gin_rummy"
agent "random" {}
agent "llm" { name = "x" }
`},
		{"duplicate names", `
game = "gin_rummy"
agent "random" {}
agent "random" {}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "test.hcl")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestValidateUnknownGameWrapsRegistryError(t *testing.T) {
	_, err := Parse([]byte(`
game = "snap"
agent "random" {}
`), "test.hcl")
	assert.ErrorIs(t, err, games.ErrUnknownGame)
}

func TestSingleAgentGameNeedsOneBlock(t *testing.T) {
	cfg, err := Parse([]byte(`
game = "blackjack"
agent "first" {}
`), "test.hcl")
	require.NoError(t, err)
	assert.Len(t, cfg.Roster(), 1)
}

func TestSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`game = `), "test.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`matches = 3`), "test.hcl")
	assert.Error(t, err, "game is required")
}
