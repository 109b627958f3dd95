package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/cardbench/internal/result"
	"github.com/lox/cardbench/internal/standings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintStandingsShowsRates(t *testing.T) {
	records := standings.Compute([]result.GameResult{
		{Names: []string{"alice", "bob"}, Scores: []float64{1, 0}},
		{Names: []string{"alice", "bob"}, Scores: []float64{1, 0}, Details: "Agent 1 reached max error count (3 errors)"},
		{Names: []string{"bob", "alice"}, Scores: []float64{0.5, 0.5}},
		{Names: []string{"bob", "alice"}, Scores: []float64{1, 0}},
	})

	var buf bytes.Buffer
	printStandings(&buf, records)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "WIN%")
	assert.Contains(t, lines[0], "ERR%")

	alice := strings.Fields(lines[1])
	assert.Equal(t, []string{"alice", "4", "2", "1", "1", "0", "50.0%", "0.0%"}, alice[:8])
	bob := strings.Fields(lines[2])
	assert.Equal(t, []string{"bob", "4", "1", "2", "1", "1", "25.0%", "25.0%"}, bob[:8])
}
