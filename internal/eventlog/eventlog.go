// Package eventlog records the human-readable narration of a match.
//
// A Log only grows. Readers keep their own cursor (the length they last saw)
// and ask for everything since it; the log never tracks who has read what.
package eventlog

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
)

// Log is an append-only sequence of turn events
type Log struct {
	events []string
	echo   *log.Logger
}

// New creates an empty log. When echo is non-nil every pushed event is also
// written to it at debug level.
func New(echo *log.Logger) *Log {
	return &Log{echo: echo}
}

// Push appends an event
func (l *Log) Push(event string) {
	l.events = append(l.events, event)
	if l.echo != nil {
		l.echo.Debug(event, "seq", len(l.events)-1)
	}
}

// Pushf formats and appends an event
func (l *Log) Pushf(format string, args ...any) {
	l.Push(fmt.Sprintf(format, args...))
}

// Len returns the number of events recorded so far
func (l *Log) Len() int {
	return len(l.events)
}

// Since returns a copy of the events recorded at index from onwards. Indexes
// past the end yield an empty slice.
func (l *Log) Since(from int) []string {
	if from < 0 {
		from = 0
	}
	if from >= len(l.events) {
		return []string{}
	}
	return slices.Clone(l.events[from:])
}

// Events returns a copy of the full log
func (l *Log) Events() []string {
	return l.Since(0)
}

// Last returns the most recent event, or "" for an empty log
func (l *Log) Last() string {
	if len(l.events) == 0 {
		return ""
	}
	return l.events[len(l.events)-1]
}

// Cursors tracks, per reader, how far into a Log each reader has read
type Cursors[K comparable] struct {
	log *Log
	pos map[K]int
}

// NewCursors creates cursors over l with every reader at the start
func NewCursors[K comparable](l *Log) *Cursors[K] {
	return &Cursors[K]{log: l, pos: make(map[K]int)}
}

// Unread returns the events reader has not seen and advances its cursor to
// the current end of the log
func (c *Cursors[K]) Unread(reader K) []string {
	events := c.log.Since(c.pos[reader])
	c.pos[reader] = c.log.Len()
	return events
}

// Position returns the index the reader will read from next
func (c *Cursors[K]) Position(reader K) int {
	return c.pos[reader]
}
