package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
)

// RenderTokens draws tokenized lines with their styles. Tokens without a
// foreground use the terminal default.
func RenderTokens(lines [][]grantview.Token, renderer *lipgloss.Renderer) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		for _, tok := range line {
			sb.WriteString(tokenStyle(tok.Style, renderer).Render(tok.Text))
		}
	}
	return sb.String()
}

func tokenStyle(s grantview.Style, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Bold {
		style = style.Bold(true)
	}
	return style
}

// HighlightJSON renders source as syntax-highlighted JSON. With a nil
// tokenizer the source is returned unchanged.
func HighlightJSON(source string, tokenizer grantview.Tokenizer, renderer *lipgloss.Renderer) string {
	if tokenizer == nil {
		return source
	}
	lines := tokenizer.TokenizeLines("json", source)
	if lines == nil {
		return source
	}
	return RenderTokens(lines, renderer)
}
