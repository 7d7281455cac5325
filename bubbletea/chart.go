package bubbletea

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	barFill  = "█"
	barTrack = "░"

	minBarWidth = 10
	maxBarWidth = 40
)

// barChartRow is one labelled value on a 0 to max scale.
type barChartRow struct {
	label string
	value float64
	text  string
}

type barStyles struct {
	fill  lipgloss.Style
	track lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
}

// bar draws value/scale as a horizontal bar of width cells. Values outside
// [0, scale] are clamped for drawing only.
func bar(value, scale float64, width int, s barStyles) string {
	if width < 1 {
		width = 1
	}
	ratio := 0.0
	if scale > 0 {
		ratio = math.Min(math.Max(value/scale, 0), 1)
	}
	filled := int(math.Round(ratio * float64(width)))
	return s.fill.Render(strings.Repeat(barFill, filled)) +
		s.track.Render(strings.Repeat(barTrack, width-filled))
}

// barChart renders rows in their given order with aligned labels.
func barChart(rows []barChartRow, scale float64, width int, indent int, s barStyles) string {
	if len(rows) == 0 {
		return strings.Repeat(" ", indent) + s.label.Render("No data")
	}

	labelWidth := 0
	valueWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.label))
		valueWidth = max(valueWidth, lipgloss.Width(r.text))
	}
	barWidth := chartWidth(width - indent - labelWidth - valueWidth - 4)

	pad := strings.Repeat(" ", indent)
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := r.label + strings.Repeat(" ", labelWidth-lipgloss.Width(r.label))
		lines = append(lines, pad+s.label.Render(label)+"  "+bar(r.value, scale, barWidth, s)+"  "+s.value.Render(r.text))
	}
	return strings.Join(lines, "\n")
}

func chartWidth(available int) int {
	if available < minBarWidth {
		return minBarWidth
	}
	if available > maxBarWidth {
		return maxBarWidth
	}
	return available
}
