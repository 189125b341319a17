// Package style holds the colours, icons and lipgloss styles shared by the
// log handler and command output.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Accent = lipgloss.Color("#0EA5A4")
	Muted  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)

// Styles for tabular command output.
var (
	Header = lipgloss.NewStyle().Bold(true).Foreground(Accent)
	Key    = lipgloss.NewStyle().Foreground(Accent)
	Faint  = lipgloss.NewStyle().Foreground(Muted)
	OK     = lipgloss.NewStyle().Foreground(Green)
	Failed = lipgloss.NewStyle().Foreground(Red)
)
