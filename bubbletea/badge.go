package bubbletea

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
)

// Badge is the visual treatment of a decision.
type Badge struct {
	Decision grantview.Decision
	Icon     string
	Color    string
}

// DecisionBadge returns the badge for d using the palette's status colors.
// It fails with grantview.ErrUnknownDecision for values outside the closed set.
func DecisionBadge(d grantview.Decision, p grantview.Palette) (Badge, error) {
	switch d {
	case grantview.DecisionAccept:
		return Badge{Decision: d, Icon: "✓", Color: p.Success}, nil
	case grantview.DecisionReject:
		return Badge{Decision: d, Icon: "✗", Color: p.Error}, nil
	case grantview.DecisionRevise:
		return Badge{Decision: d, Icon: "↻", Color: p.Warning}, nil
	case grantview.DecisionConditionallyAccept:
		return Badge{Decision: d, Icon: "◐", Color: p.Cyan}, nil
	}
	return Badge{}, fmt.Errorf("%w: %q", grantview.ErrUnknownDecision, string(d))
}

// Render draws the badge as a bordered label.
func (b Badge) Render(renderer *lipgloss.Renderer) string {
	return newStyle(renderer).
		Foreground(lipgloss.Color(b.Color)).
		Bold(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(b.Color)).
		Padding(0, 1).
		Render(b.Icon + " " + string(b.Decision))
}
