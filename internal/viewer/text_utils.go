package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

func truncateText(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", " ")

	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

func padRightANSI(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// cellText is what one rune occupies on screen. Tabs become spaces and
// control characters a visible placeholder.
func cellText(r rune, tabWidth int) string {
	switch {
	case r == '\t':
		return strings.Repeat(" ", max(tabWidth, 1))
	case r < 0x20 || r == 0x7f:
		return "?"
	}
	return string(r)
}

func cellWidth(r rune, tabWidth int) int {
	if r == '\t' {
		return max(tabWidth, 1)
	}
	if r < 0x20 || r == 0x7f {
		return 1
	}
	return runewidth.RuneWidth(r)
}
