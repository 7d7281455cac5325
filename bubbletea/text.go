package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const tabWidth = 8

// ExpandTabs converts tab characters to spaces using 8-column tab stops.
// startCol is the column where s begins.
func ExpandTabs(s string, startCol int) string {
	if !strings.Contains(s, "\t") {
		return s
	}

	var sb strings.Builder
	col := startCol
	for _, r := range s {
		switch r {
		case '\t':
			next := (col/tabWidth + 1) * tabWidth
			sb.WriteString(strings.Repeat(" ", next-col))
			col = next
		case '\n':
			sb.WriteRune(r)
			col = 0
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}

// Wrap word-wraps text to width and indents every line by indent spaces.
// Width includes the indent. A width of zero or less disables wrapping.
func Wrap(text string, width, indent int) string {
	text = ExpandTabs(strings.TrimSpace(text), 0)
	pad := strings.Repeat(" ", indent)
	if limit := width - indent; limit > 0 {
		text = ansi.Wordwrap(text, limit, "")
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = pad + strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// truncate shortens s to width cells.
func truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
