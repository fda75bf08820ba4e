package console

import "github.com/charmbracelet/lipgloss"

// Colors used for console output.
var (
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorGreen   = lipgloss.Color("#5FD75F")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorCyan    = lipgloss.Color("#5FD7FF")
	ColorMagenta = lipgloss.Color("#D787FF")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

type styles struct {
	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	heading lipgloss.Style
	body    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		info:    r.NewStyle().Foreground(ColorCyan),
		success: r.NewStyle().Foreground(ColorGreen),
		warn:    r.NewStyle().Foreground(ColorYellow),
		err:     r.NewStyle().Foreground(ColorRed).Bold(true),
		heading: r.NewStyle().Foreground(ColorMagenta).Bold(true),
		body:    r.NewStyle().Foreground(ColorWhite).TabWidth(lipgloss.NoTabConversion),
	}
}
