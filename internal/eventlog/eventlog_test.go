package eventlog

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushAndSince(t *testing.T) {
	t.Parallel()

	l := New(nil)
	l.Push("a")
	l.Pushf("b%d", 2)
	l.Push("c")

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"a", "b2", "c"}, l.Events())
	assert.Equal(t, []string{"b2", "c"}, l.Since(1))
	assert.Empty(t, l.Since(3))
	assert.Empty(t, l.Since(10))
	assert.Equal(t, []string{"a", "b2", "c"}, l.Since(-4))
	assert.Equal(t, "c", l.Last())
}

func TestSinceReturnsCopy(t *testing.T) {
	t.Parallel()

	l := New(nil)
	l.Push("original")
	got := l.Events()
	got[0] = "mutated"
	assert.Equal(t, "original", l.Events()[0])
}

func TestCursorsAreIndependent(t *testing.T) {
	t.Parallel()

	l := New(nil)
	cursors := NewCursors[int](l)

	l.Push("e0")
	l.Push("e1")
	require.Equal(t, []string{"e0", "e1"}, cursors.Unread(0))

	l.Push("e2")
	assert.Equal(t, []string{"e2"}, cursors.Unread(0))
	assert.Equal(t, []string{"e0", "e1", "e2"}, cursors.Unread(1))
	assert.Empty(t, cursors.Unread(0))
	assert.Equal(t, 3, cursors.Position(1))
}

func TestEchoLogsEvents(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	l := New(logger)
	l.Push("Agent 0 goes Gin!")

	assert.Contains(t, buf.String(), "Agent 0 goes Gin!")
}
