package tui

import "github.com/charmbracelet/lipgloss"

// Static styles shared by the replay viewer and the command line output
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	EventStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	WinStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	LossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	DrawStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// ScoreStyle colours a score by outcome
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score > 0.5:
		return WinStyle
	case score < 0.5:
		return LossStyle
	default:
		return DrawStyle
	}
}
