package result

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactFields(t *testing.T) {
	t.Parallel()
	r := GameResult{
		Names:    []string{"random", "gpt"},
		Scores:   []float64{1, 0},
		EventLog: []string{"[Agent 0] Draw"},
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"agent_0_name": "random",
		"agent_1_name": "gpt",
		"agent_0_score": 1,
		"agent_1_score": 0,
		"event_log": ["[Agent 0] Draw"],
		"details": null
	}`, string(b))

	r.Details = "Max turns (100) reached"
	b, err = json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"details":"Max turns (100) reached"`)
}

func TestSingleAgentPairsWithHouse(t *testing.T) {
	t.Parallel()
	b, err := json.Marshal(GameResult{Names: []string{"random"}, Scores: []float64{0.5}})
	require.NoError(t, err)

	var got GameResult
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, []string{"random", HouseName}, got.Names)
	assert.Equal(t, []float64{0.5, 0.5}, got.Scores)
	assert.Equal(t, []string{}, got.EventLog)
}

func TestTooManyAgents(t *testing.T) {
	t.Parallel()
	_, err := json.Marshal(GameResult{Names: []string{"a", "b", "c"}, Scores: []float64{1, 0, 0}})
	assert.ErrorIs(t, err, ErrTooManyAgents)
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "openai-gpt-4o-mini", sanitize("openai/gpt-4o-mini"))
	assert.Equal(t, "agent", sanitize("///"))
	assert.Equal(t, "random", sanitize("random"))
}

func TestFileSinkRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	clock := quartz.NewMock(t)
	clock.Set(time.Unix(1700000000, 0))
	sink := &FileSink{Dir: filepath.Join(dir, "gin"), Clock: clock}

	r := &GameResult{
		Names:   []string{"random", "openai/gpt-4o"},
		Scores:  []float64{0, 1},
		Details: "Agent 0 reached max error count (3 errors)",
	}
	// identical timestamps still produce distinct files
	p1, err := sink.Save("gin_rummy", r)
	require.NoError(t, err)
	p2, err := sink.Save("gin_rummy", r)
	require.NoError(t, err)
	assert.NotEqual(t, p1, p2)
	assert.True(t, strings.HasPrefix(filepath.Base(p1), "gin_rummy_random_openai-gpt-4o_1700000000000000000_"))

	require.NoError(t, os.WriteFile(filepath.Join(sink.Dir, "broken.json"), []byte("{"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sink.Dir, "notes.txt"), []byte("x"), 0o644))

	results, skipped, err := LoadDir(sink.Dir)
	require.NoError(t, err)
	assert.Len(t, skipped, 1)
	require.Len(t, results, 2)
	assert.Equal(t, *r, GameResult{
		Names:    results[0].Names,
		Scores:   results[0].Scores,
		Details:  results[0].Details,
		EventLog: nil,
	})
	assert.Equal(t, []string{}, results[0].EventLog)
}

func TestLoadDirMissing(t *testing.T) {
	t.Parallel()
	_, _, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()
	sink := NewFileSink(t.TempDir())
	path, err := sink.Save("blackjack", &GameResult{
		Names:    []string{"solo"},
		Scores:   []float64{1},
		EventLog: []string{"Payout: 1.0"},
		Details:  "Payout: 1.0",
	})
	require.NoError(t, err)

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"solo", HouseName}, r.Names)
	assert.Equal(t, []float64{1, 0}, r.Scores)
	assert.Equal(t, "Payout: 1.0", r.Details)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
