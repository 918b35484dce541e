package style

import "github.com/charmbracelet/lipgloss"

// Colors for the portfolio's terminal branding.
var (
	Primary   = lipgloss.Color("#22C55E") // green-500, the prompt green
	Secondary = lipgloss.Color("#06B6D4") // cyan-500
	Accent    = lipgloss.Color("#A78BFA") // violet-400, assistant replies
	Warning   = lipgloss.Color("#F59E0B") // amber-500
	Error     = lipgloss.Color("#EF4444") // red-500
	Muted     = lipgloss.Color("#6B7280") // gray-500
	Dim       = lipgloss.Color("#374151") // gray-700
)

// Base styles.
var (
	Bold      = lipgloss.NewStyle().Bold(true)
	Faint     = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error)

	// Prompts
	CommandPrompt = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
	ChatPrompt = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// History entries
	InputEcho = lipgloss.NewStyle().
			Foreground(Muted)
	AILabel = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	// Busy indicator
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)
	BusyLabel = lipgloss.NewStyle().
			Foreground(Muted)

	// Banner
	BannerTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
	BannerDetail = lipgloss.NewStyle().
			Foreground(Muted)

	// Hint text (quit confirmation, keybindings)
	Hint = lipgloss.NewStyle().
		Foreground(Dim)
)
