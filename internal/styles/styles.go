// Package styles centralizes the lipgloss styles used by the UI.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#2563EB")
	Success   = lipgloss.Color("#16A34A")
	Warning   = lipgloss.Color("#D97706")
	Error     = lipgloss.Color("#DC2626")

	Text      = lipgloss.Color("#E5E7EB")
	TextMuted = lipgloss.Color("#9CA3AF")
	TextDim   = lipgloss.Color("#6B7280")

	Surface   = lipgloss.Color("#1F2937")
	Highlight = lipgloss.Color("#374151")
)

// Panel styles.
var (
	PanelActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)

	PanelInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(TextDim)

	PanelTitle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// List row styles.
var (
	RowSelected = lipgloss.NewStyle().
			Background(Highlight).
			Foreground(Text).
			Bold(true)

	RowDir = lipgloss.NewStyle().
		Foreground(Secondary)

	RowFile = lipgloss.NewStyle().
		Foreground(Text)

	RowSynthetic = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// Chrome styles.
var (
	StatusBar = lipgloss.NewStyle().
			Background(Surface).
			Foreground(TextMuted)

	StatusMode = lipgloss.NewStyle().
			Background(Primary).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	SearchPrompt = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	Toast = lipgloss.NewStyle().
		Background(Surface).
		Foreground(Text).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Success)

	ToastError = Toast.
			BorderForeground(Error)

	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpText = lipgloss.NewStyle().
			Foreground(TextMuted)
)
