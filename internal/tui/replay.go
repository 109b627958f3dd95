// Package tui renders match results in the terminal, including an
// interactive viewer for stepping back through a saved match.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lox/cardbench/internal/result"
)

const (
	focusLog = iota
	focusFilter
)

const sidebarWidth = 28

// ReplayModel is the Bubble Tea model for browsing one match's event log
type ReplayModel struct {
	title  string
	result *result.GameResult

	logViewport viewport.Model
	filterInput textinput.Model
	focusedPane int
	shown       int

	width    int
	height   int
	quitting bool
}

// NewReplayModel creates a viewer for r. The log starts focused and unfiltered.
func NewReplayModel(title string, r *result.GameResult) *ReplayModel {
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "Filter events (e.g. \"Agent 1\", \"knocks\")"
	ti.CharLimit = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "/ "

	m := &ReplayModel{
		title:       title,
		result:      r,
		logViewport: vp,
		filterInput: ti,
		focusedPane: focusLog,
	}
	m.refresh()
	return m
}

// RunReplay opens the viewer full screen and blocks until it is closed
func RunReplay(title string, r *result.GameResult) error {
	_, err := tea.NewProgram(NewReplayModel(title, r), tea.WithAltScreen()).Run()
	return err
}

// FilterEvents returns the events containing query, ignoring case, each
// prefixed with its 1-based position in the full log.
func FilterEvents(events []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	var lines []string
	for i, e := range events {
		if query != "" && !strings.Contains(strings.ToLower(e), query) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%4d  %s", i+1, e))
	}
	return lines
}

// Shown returns how many events pass the current filter
func (m *ReplayModel) Shown() int {
	return m.shown
}

func (m *ReplayModel) refresh() {
	lines := FilterEvents(m.result.EventLog, m.filterInput.Value())
	m.shown = len(lines)
	if len(lines) == 0 {
		m.logViewport.SetContent(MutedStyle.Render("No matching events"))
		return
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
}

// Init initializes the model
func (m *ReplayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc", "q":
			if m.focusedPane == focusLog {
				m.quitting = true
				return m, tea.Quit
			}
			if msg.String() == "esc" {
				m.focusedPane = focusLog
				m.filterInput.Blur()
				return m, nil
			}
		case "tab", "/":
			if m.focusedPane == focusLog {
				m.focusedPane = focusFilter
				return m, m.filterInput.Focus()
			}
			if msg.String() == "tab" {
				m.focusedPane = focusLog
				m.filterInput.Blur()
				return m, nil
			}
		case "home", "g":
			if m.focusedPane == focusLog {
				m.logViewport.GotoTop()
				return m, nil
			}
		case "end", "G":
			if m.focusedPane == focusLog {
				m.logViewport.GotoBottom()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == focusFilter {
		before := m.filterInput.Value()
		m.filterInput, cmd = m.filterInput.Update(msg)
		cmds = append(cmds, cmd)
		if m.filterInput.Value() != before {
			m.refresh()
			m.logViewport.GotoTop()
		}
		return m, tea.Batch(cmds...)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// resize fits the log pane to the window: the sidebar takes a fixed width on
// the right and the filter pane three rows at the bottom.
func (m *ReplayModel) resize() {
	m.logViewport.Width = max(1, m.width-sidebarWidth-4)
	m.logViewport.Height = max(1, m.height-3-4)
	m.filterInput.Width = max(1, m.width-6)
}

// View renders the viewer
func (m *ReplayModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	border := func(focused bool) lipgloss.Style {
		s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#626262"))
		if focused {
			s = s.BorderForeground(lipgloss.Color("#04B575"))
		}
		return s
	}

	logPane := border(m.focusedPane == focusLog).
		Width(m.logViewport.Width).
		Height(m.logViewport.Height).
		Render(m.logViewport.View())

	sidebar := border(false).
		Width(sidebarWidth).
		Height(m.logViewport.Height).
		Render(m.renderSidebar())

	filterPane := border(m.focusedPane == focusFilter).
		Width(max(1, m.width-2)).
		Render(m.filterInput.View() + "\n" + m.renderHelp())

	top := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebar)
	return lipgloss.JoinVertical(lipgloss.Top, top, filterPane)
}

func (m *ReplayModel) renderSidebar() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, name := range m.result.Names {
		score := m.result.Scores[i]
		b.WriteString(HeaderStyle.Render(name))
		b.WriteString(" ")
		b.WriteString(ScoreStyle(score).Render(fmt.Sprintf("%.1f", score)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("%d of %d events", m.shown, len(m.result.EventLog))))
	if m.result.Details != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(sidebarWidth).Render(m.result.Details))
	}
	return b.String()
}

func (m *ReplayModel) renderHelp() string {
	if m.focusedPane == focusFilter {
		return MutedStyle.Render("Type to filter • Tab/Esc back to log • Ctrl+C to quit")
	}
	return MutedStyle.Render("↑↓ scroll • g/G top/bottom • / or Tab to filter • q to quit")
}
