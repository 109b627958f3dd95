package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/cardbench/internal/tournament"
	"github.com/lox/cardbench/internal/tui"
)

// progressDots is the width of the bar, one dot per 2.5% of matches
const progressDots = 40

// progressMonitor prints a row of dots as tournament matches finish and a
// count once the last one is in. Calls must not overlap, which the
// tournament runner guarantees.
type progressMonitor struct {
	out         io.Writer
	dotsPrinted int
	started     bool
	ended       bool
}

func newProgressMonitor(out io.Writer) *progressMonitor {
	return &progressMonitor{out: out}
}

// OnMatchDone is a tournament.Config.OnMatchDone hook
func (m *progressMonitor) OnMatchDone(p tournament.Progress) {
	total := max(p.Total, 1)
	done := p.Completed + p.Failed
	target := min(done, total) * progressDots / total

	var b strings.Builder
	if !m.started {
		b.WriteString("Matches: ")
		m.started = true
	}
	if target > m.dotsPrinted {
		b.WriteString(strings.Repeat(".", target-m.dotsPrinted))
		m.dotsPrinted = target
	}
	if done >= p.Total && !m.ended {
		fmt.Fprintf(&b, " %d/%d", done, p.Total)
		if p.Failed > 0 {
			b.WriteString(tui.LossStyle.Render(fmt.Sprintf(" (%d failed)", p.Failed)))
		}
		b.WriteString("\n")
		m.ended = true
	}
	_, _ = io.WriteString(m.out, b.String())
}

// Finish ends a row cut short by an interrupted tournament
func (m *progressMonitor) Finish() {
	if m.started && !m.ended {
		_, _ = io.WriteString(m.out, " interrupted\n")
		m.ended = true
	}
}
