// Package styles defines the lipgloss styles shared by the taskmon
// display surface and the terminal summary output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors - chosen for contrast on both black and dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
	OverallColor   = lipgloss.Color("#22D3EE") // Cyan - overall task title
	SubtaskColor   = lipgloss.Color("#10B981") // Green - subtask title
	YellowColor    = lipgloss.Color("#FBBF24") // Yellow

	// Convenience styles for colors
	Primary   = lipgloss.NewStyle().Foreground(PrimaryColor)
	Secondary = lipgloss.NewStyle().Foreground(SecondaryColor)
	Warning   = lipgloss.NewStyle().Foreground(WarningColor)
	Error     = lipgloss.NewStyle().Foreground(ErrorColor)
	Muted     = lipgloss.NewStyle().Foreground(MutedColor)
	Text      = lipgloss.NewStyle().Foreground(TextColor)

	// Progress bar titles
	OverallTitle = lipgloss.NewStyle().Foreground(OverallColor)
	SubtaskTitle = lipgloss.NewStyle().Foreground(SubtaskColor)

	// Panel chrome
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(0, 2)

	PanelTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// Live panel finished state
	Finished = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	// Terminal summary lines printed on Stop
	SuccessLine = lipgloss.NewStyle().
			Bold(true).
			Foreground(SecondaryColor)

	FailureLine = lipgloss.NewStyle().
			Bold(true).
			Foreground(ErrorColor)

	ElapsedLine = lipgloss.NewStyle().
			Bold(true).
			Foreground(YellowColor)
)
