package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lox/cardbench/internal/tournament"
	"github.com/stretchr/testify/assert"
)

func TestProgressMonitorFillsBar(t *testing.T) {
	var buf bytes.Buffer
	m := newProgressMonitor(&buf)
	for i := 1; i <= 3; i++ {
		m.OnMatchDone(tournament.Progress{Completed: i, Total: 3})
	}
	m.Finish()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Matches: "))
	assert.Equal(t, progressDots, strings.Count(out, "."))
	assert.True(t, strings.HasSuffix(out, " 3/3\n"), out)
	assert.NotContains(t, out, "failed")
	assert.NotContains(t, out, "interrupted")
}

func TestProgressMonitorReportsFailures(t *testing.T) {
	var buf bytes.Buffer
	m := newProgressMonitor(&buf)
	m.OnMatchDone(tournament.Progress{Failed: 1, Total: 2})
	assert.Equal(t, "Matches: "+strings.Repeat(".", progressDots/2), buf.String())

	m.OnMatchDone(tournament.Progress{Completed: 1, Failed: 1, Total: 2})
	assert.Contains(t, buf.String(), " 2/2")
	assert.Contains(t, buf.String(), "(1 failed)")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestProgressMonitorFinishesInterruptedRow(t *testing.T) {
	var buf bytes.Buffer
	m := newProgressMonitor(&buf)
	m.Finish()
	assert.Empty(t, buf.String())

	m.OnMatchDone(tournament.Progress{Completed: 1, Total: 10})
	m.Finish()
	assert.Equal(t, "Matches: .... interrupted\n", buf.String())
}
