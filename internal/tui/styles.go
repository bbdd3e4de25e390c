package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle    lipgloss.Style
	likeStyle     lipgloss.Style
	accentStyle   lipgloss.Style
	mutedStyle    lipgloss.Style
	errorStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	helpStyle     lipgloss.Style
	borderColor   lipgloss.Color

	symLike = "♥"
	symPick = "★"
)

func init() { setTheme("classic") }

// setTheme picks the TUI palette matching the panel theme of the same name.
func setTheme(name string) {
	title, like, accent, border := lipgloss.Color("12"), lipgloss.Color("205"), lipgloss.Color("12"), lipgloss.Color("8")
	symLike, symPick = "♥", "★"
	switch strings.ToLower(name) {
	case "neon":
		title, like, accent, border = lipgloss.Color("213"), lipgloss.Color("197"), lipgloss.Color("51"), lipgloss.Color("93")
	case "mono":
		title, like, accent, border = "", "", "", ""
		symLike, symPick = "<3", "*"
	}
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(title)
	likeStyle = lipgloss.NewStyle().Foreground(like)
	accentStyle = lipgloss.NewStyle().Foreground(accent)
	mutedStyle = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle = lipgloss.NewStyle().Faint(true)
	borderColor = border
}

// applyColorProfile follows the terminal's capabilities but honours NO_COLOR,
// and drops colour entirely for the mono theme.
func applyColorProfile(theme string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || strings.EqualFold(theme, "mono") {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	profile := termenv.ColorProfile()
	if strings.Contains(strings.ToLower(os.Getenv("TERM")), "256color") && profile == termenv.ANSI {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
}
