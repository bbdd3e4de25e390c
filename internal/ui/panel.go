package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// LikeBar renders likes relative to the most liked record.
func LikeBar(likes, max, width int) string {
	t := Current()
	if max <= 0 {
		max = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(likes) / float64(max) * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat(t.SymBar, filled) + strings.Repeat(t.SymBarEmpty, width-filled)
}

// Truncate shortens s to width visible cells.
func Truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// Panel draws a framed box using the current theme.
func Panel(w io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if vis := ansi.StringWidth(ln); vis > maxw {
			maxw = vis
		}
	}
	pad := func(s string) string {
		if vis := ansi.StringWidth(s); vis < maxw {
			s = s + strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	leftPad := " "
	fmt.Fprintln(w, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(w, t.V+leftPad+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(w, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}
