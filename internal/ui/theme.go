package ui

import "strings"

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Like string
	CornerTL, CornerTR, CornerBL, CornerBR     string
	H, V                                       string
	SymLike, SymPick, SymBar, SymBarEmpty      string
}

var current Theme

func init() { SetTheme("classic") }

// Themes lists the names SetTheme understands.
var Themes = []string{"classic", "neon", "mono"}

// SetTheme switches the current theme; unknown names fall back to classic.
func SetTheme(name string) {
	disableColor = false
	switch strings.ToLower(name) {
	case "neon":
		current = Theme{
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed, Like: "\033[91m",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			SymLike: "♥", SymPick: "★", SymBar: "█", SymBarEmpty: "░",
		}
	case "mono":
		disableColor = true
		current = Theme{
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
			SymLike: "<3", SymPick: "*", SymBar: "#", SymBarEmpty: ".",
		}
	default: // classic
		current = Theme{
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed, Like: fgMagenta,
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			SymLike: "♥", SymPick: "★", SymBar: "█", SymBarEmpty: "░",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }
