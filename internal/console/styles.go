package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used for prompts and table output
type Styles struct {
	Header    lipgloss.Style
	Prompt    lipgloss.Style
	Info      lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Win       lipgloss.Style
	Lose      lipgloss.Style
	Push      lipgloss.Style
	Warning   lipgloss.Style
}

// NewStyles builds styles bound to a renderer for w. With noColor the
// renderer is forced to the ASCII profile and every style renders plain text.
func NewStyles(w io.Writer, noColor bool) Styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
		Prompt: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		RedCard: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true),
		Win: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Lose: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Push: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")),
		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
	}
}
