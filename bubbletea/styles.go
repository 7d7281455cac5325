package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
)

// styleFromColorPair converts a ColorPair to a lipgloss style.
func styleFromColorPair(cp grantview.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	style := newStyle(renderer)
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

func colorStyle(color string, renderer *lipgloss.Renderer) lipgloss.Style {
	return styleFromColorPair(grantview.ColorPair{Foreground: color}, renderer)
}

func newStyle(renderer *lipgloss.Renderer) lipgloss.Style {
	if renderer == nil {
		return lipgloss.NewStyle()
	}
	return renderer.NewStyle()
}

// palette holds the lipgloss styles shared by the screens.
type palette struct {
	title   lipgloss.Style
	muted   lipgloss.Style
	text    lipgloss.Style
	notice  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	info    lipgloss.Style
	border  lipgloss.Style
}

func newPalette(theme grantview.Theme, renderer *lipgloss.Renderer) palette {
	p := theme.Palette()
	s := theme.Styles()
	return palette{
		title:   styleFromColorPair(s.Title, renderer).Bold(true),
		muted:   colorStyle(p.Muted, renderer),
		text:    colorStyle(p.Foreground, renderer),
		notice:  styleFromColorPair(s.Notice, renderer),
		success: colorStyle(p.Success, renderer),
		warning: colorStyle(p.Warning, renderer),
		failure: colorStyle(p.Error, renderer),
		info:    colorStyle(p.Info, renderer),
		border: newStyle(renderer).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Border)).
			Padding(0, 2),
	}
}
