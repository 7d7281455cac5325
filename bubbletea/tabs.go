package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
	gvlipgloss "github.com/fwojciec/grantview/lipgloss"
)

// Tab identifies one view of an evaluation.
type Tab int

// Tab constants, in display order.
const (
	TabVisual Tab = iota
	TabDetailed
	TabCritique
	TabBudget
)

// Tabs returns every tab in display order.
func Tabs() []Tab {
	return []Tab{TabVisual, TabDetailed, TabCritique, TabBudget}
}

// String returns the tab's label.
func (t Tab) String() string {
	switch t {
	case TabVisual:
		return "Visual Dashboard"
	case TabDetailed:
		return "Detailed Scoring"
	case TabCritique:
		return "Full Critique"
	case TabBudget:
		return "Budget Analysis"
	}
	return fmt.Sprintf("Tab(%d)", int(t))
}

// Name returns the short name used on the command line.
func (t Tab) Name() string {
	switch t {
	case TabVisual:
		return "visual"
	case TabDetailed:
		return "detailed"
	case TabCritique:
		return "critique"
	case TabBudget:
		return "budget"
	}
	return ""
}

// ParseTab resolves a short tab name such as "budget".
func ParseTab(name string) (Tab, error) {
	for _, t := range Tabs() {
		if strings.EqualFold(t.Name(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q (want visual, detailed, critique or budget)", name)
}

func (t Tab) next() Tab {
	return Tab((int(t) + 1) % len(Tabs()))
}

func (t Tab) prev() Tab {
	n := len(Tabs())
	return Tab((int(t) - 1 + n) % n)
}

// RenderOptions controls how an evaluation is drawn.
type RenderOptions struct {
	Renderer *lipgloss.Renderer
	Theme    grantview.Theme
	// Width is the available width in cells. Zero means 80.
	Width int
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Theme == nil {
		o.Theme = gvlipgloss.DefaultTheme()
	}
	if o.Width <= 0 {
		o.Width = 80
	}
	return o
}

// tabStyles are the styles used by the tab renderers.
type tabStyles struct {
	palette
	heading  lipgloss.Style
	score    lipgloss.Style
	strength lipgloss.Style
	weakness lipgloss.Style
	bars     barStyles
	pink     lipgloss.Style
	purple   lipgloss.Style
}

func newTabStyles(o RenderOptions) tabStyles {
	s := o.Theme.Styles()
	p := o.Theme.Palette()
	base := newPalette(o.Theme, o.Renderer)
	return tabStyles{
		palette:  base,
		heading:  styleFromColorPair(s.Title, o.Renderer).Bold(true),
		score:    styleFromColorPair(s.Score, o.Renderer).Bold(true),
		strength: styleFromColorPair(s.Strength, o.Renderer),
		weakness: styleFromColorPair(s.Weakness, o.Renderer),
		bars: barStyles{
			fill:  styleFromColorPair(s.Bar, o.Renderer),
			track: styleFromColorPair(s.BarTrack, o.Renderer),
			label: base.text,
			value: styleFromColorPair(s.Score, o.Renderer),
		},
		pink:   colorStyle(p.Pink, o.Renderer),
		purple: colorStyle(p.Purple, o.Renderer),
	}
}

// RenderTab draws one tab of e. It only reads e and uses the values exactly
// as the backend reported them.
func RenderTab(e grantview.Evaluation, tab Tab, opts RenderOptions) string {
	opts = opts.withDefaults()
	s := newTabStyles(opts)
	switch tab {
	case TabDetailed:
		return renderDetailed(e, opts.Width, s)
	case TabCritique:
		return renderCritique(e.FullCritique, opts.Width, s)
	case TabBudget:
		return renderBudget(e.BudgetAnalysis, opts.Width, s)
	default:
		return renderVisual(e, opts.Width, s)
	}
}

// RenderHeader draws the decision badge, overall score, file name and date.
func RenderHeader(e grantview.Evaluation, opts RenderOptions) (string, error) {
	opts = opts.withDefaults()
	badge, err := DecisionBadge(e.Decision, opts.Theme.Palette())
	if err != nil {
		return "", err
	}
	s := newTabStyles(opts)

	top := lipgloss.JoinHorizontal(lipgloss.Center,
		badge.Render(opts.Renderer),
		"  ",
		s.score.Render(grantview.FormatOverallScore(e.OverallScore)),
	)
	meta := s.muted.Render("File: "+e.FileName) + "\n" +
		s.muted.Render("Evaluated: "+grantview.FormatDate(e.CreatedAt))
	return top + "\n" + meta, nil
}

// RenderTabBar draws the tab labels with active highlighted.
func RenderTabBar(active Tab, opts RenderOptions) string {
	opts = opts.withDefaults()
	styles := opts.Theme.Styles()
	on := styleFromColorPair(styles.ActiveTab, opts.Renderer).Bold(true).Padding(0, 1)
	off := styleFromColorPair(styles.InactiveTab, opts.Renderer).Padding(0, 1)

	labels := make([]string, 0, len(Tabs()))
	for i, t := range Tabs() {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == active {
			labels = append(labels, on.Render(label))
		} else {
			labels = append(labels, off.Render(label))
		}
	}
	return strings.Join(labels, " ")
}

func renderVisual(e grantview.Evaluation, width int, s tabStyles) string {
	categories := make([]barChartRow, 0, len(e.Scores))
	for _, sc := range e.Scores {
		categories = append(categories, barChartRow{label: sc.Category, value: sc.Score, text: grantview.FormatScore(sc.Score)})
	}
	domains := make([]barChartRow, 0, len(e.CritiqueDomains))
	for _, d := range e.CritiqueDomains {
		domains = append(domains, barChartRow{label: d.Domain, value: d.Score, text: grantview.FormatScore(d.Score)})
	}
	sections := make([]barChartRow, 0, len(e.SectionScores))
	for _, sec := range e.SectionScores {
		sections = append(sections, barChartRow{label: sec.Section, value: sec.Score, text: grantview.FormatScore(sec.Score)})
	}

	var sb strings.Builder
	sb.WriteString(s.heading.Render("Score Categories"))
	sb.WriteString("\n")
	sb.WriteString(barChart(categories, 10, width, 2, s.bars))
	sb.WriteString("\n\n")
	sb.WriteString(s.heading.Render("Critique Domains"))
	sb.WriteString("\n")
	sb.WriteString(barChart(domains, 10, width, 2, s.bars))
	sb.WriteString("\n\n")
	sb.WriteString(s.heading.Render("Section Scores"))
	sb.WriteString("\n")
	sb.WriteString(barChart(sections, 10, width, 2, s.bars))
	return sb.String()
}

func renderDetailed(e grantview.Evaluation, width int, s tabStyles) string {
	if len(e.Scores) == 0 {
		return s.muted.Render("No scores reported.")
	}

	blocks := make([]string, 0, len(e.Scores))
	for _, sc := range e.Scores {
		scale := sc.MaxScore
		if scale <= 0 {
			scale = 10
		}
		var sb strings.Builder
		sb.WriteString(s.heading.Render(sc.Category))
		sb.WriteString("  ")
		sb.WriteString(s.score.Render(grantview.FormatScore(sc.Score) + "/" + grantview.FormatScore(sc.MaxScore)))
		sb.WriteString("\n  ")
		sb.WriteString(bar(sc.Score, scale, chartWidth(width-4), s.bars))

		sb.WriteString("\n  ")
		sb.WriteString(s.strength.Bold(true).Render("Strengths"))
		for _, st := range sc.Strengths {
			sb.WriteString("\n")
			sb.WriteString(bullet(s.strength.Render("+"), st, width, 4))
		}
		sb.WriteString("\n  ")
		sb.WriteString(s.weakness.Bold(true).Render("Weaknesses"))
		for _, w := range sc.Weaknesses {
			sb.WriteString("\n")
			sb.WriteString(bullet(s.weakness.Render("-"), w, width, 4))
		}
		blocks = append(blocks, sb.String())
	}
	return strings.Join(blocks, "\n\n")
}

// bullet renders marker followed by wrapped text, continuation lines aligned
// with the text.
func bullet(marker, text string, width, indent int) string {
	wrapped := Wrap(text, width, indent+2)
	return strings.Repeat(" ", indent) + marker + " " + strings.TrimLeft(wrapped, " ")
}

func (s tabStyles) severity(sev grantview.Severity) lipgloss.Style {
	switch sev {
	case grantview.SeverityHigh:
		return s.failure
	case grantview.SeverityMedium:
		return s.warning
	default:
		return s.info
	}
}

func (s tabStyles) priority(p grantview.Priority) (string, lipgloss.Style) {
	switch p {
	case grantview.PriorityHigh:
		return "!", s.pink
	case grantview.PriorityMedium:
		return "•", s.purple
	default:
		return "·", s.muted
	}
}

// PriorityIcon returns the marker drawn next to a recommendation.
func PriorityIcon(p grantview.Priority) string {
	icon, _ := tabStyles{}.priority(p)
	return icon
}

func priorityLabel(p grantview.Priority) string {
	level := string(p)
	if level == "" {
		return "Priority"
	}
	return strings.ToUpper(level[:1]) + level[1:] + " Priority"
}

func renderCritique(c grantview.FullCritique, width int, s tabStyles) string {
	var sb strings.Builder
	sb.WriteString(s.heading.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(s.text.Render(Wrap(c.Summary, width, 2)))

	sb.WriteString("\n\n")
	sb.WriteString(s.heading.Render("Issues Identified"))
	if len(c.Issues) == 0 {
		sb.WriteString("\n  ")
		sb.WriteString(s.muted.Render("None"))
	}
	for _, issue := range c.Issues {
		style := s.severity(issue.Severity)
		sb.WriteString("\n  ")
		sb.WriteString(style.Render("▲ " + strings.ToUpper(string(issue.Severity))))
		sb.WriteString(s.muted.Render(" • "))
		sb.WriteString(s.text.Render(issue.Category))
		sb.WriteString("\n")
		sb.WriteString(s.text.Render(Wrap(issue.Description, width, 4)))
	}

	sb.WriteString("\n\n")
	sb.WriteString(s.heading.Render("Recommendations"))
	if len(c.Recommendations) == 0 {
		sb.WriteString("\n  ")
		sb.WriteString(s.muted.Render("None"))
	}
	for _, rec := range c.Recommendations {
		icon, style := s.priority(rec.Priority)
		sb.WriteString("\n  ")
		sb.WriteString(style.Bold(true).Render(icon))
		sb.WriteString(" ")
		sb.WriteString(style.Render(priorityLabel(rec.Priority)))
		sb.WriteString("\n")
		sb.WriteString(s.text.Render(Wrap(rec.Recommendation, width, 4)))
	}
	return sb.String()
}

func (s tabStyles) flag(t grantview.FlagType) (string, lipgloss.Style) {
	switch t {
	case grantview.FlagError:
		return "✗", s.failure
	case grantview.FlagWarning:
		return "⚠", s.warning
	default:
		return "$", s.info
	}
}

func renderBudget(b grantview.BudgetAnalysis, width int, s tabStyles) string {
	var sb strings.Builder
	sb.WriteString(s.heading.Render("Budget Overview"))
	sb.WriteString("\n  ")
	sb.WriteString(s.muted.Render("Total Budget "))
	sb.WriteString(s.score.Render(grantview.FormatCurrency(b.TotalBudget)))
	sb.WriteString("\n")

	labelWidth, pctWidth, amountWidth := 0, 0, 0
	for _, item := range b.Breakdown {
		labelWidth = max(labelWidth, lipgloss.Width(item.Category))
		pctWidth = max(pctWidth, lipgloss.Width(grantview.FormatPercent(item.Percentage)))
		amountWidth = max(amountWidth, lipgloss.Width(grantview.FormatCurrency(item.Amount)))
	}
	barWidth := chartWidth(width - labelWidth - pctWidth - amountWidth - 8)
	for _, item := range b.Breakdown {
		pct := grantview.FormatPercent(item.Percentage)
		amount := grantview.FormatCurrency(item.Amount)
		sb.WriteString("\n  ")
		sb.WriteString(s.text.Render(item.Category + strings.Repeat(" ", labelWidth-lipgloss.Width(item.Category))))
		sb.WriteString("  ")
		sb.WriteString(bar(item.Percentage, 100, barWidth, s.bars))
		sb.WriteString("  ")
		sb.WriteString(s.muted.Render(strings.Repeat(" ", pctWidth-lipgloss.Width(pct)) + pct))
		sb.WriteString("  ")
		sb.WriteString(s.text.Render(strings.Repeat(" ", amountWidth-lipgloss.Width(amount)) + amount))
	}

	sb.WriteString("\n\n")
	sb.WriteString(s.heading.Render("Budget Flags"))
	if len(b.Flags) == 0 {
		sb.WriteString("\n  ")
		sb.WriteString(s.muted.Render("None"))
	}
	for _, f := range b.Flags {
		icon, style := s.flag(f.Type)
		sb.WriteString("\n")
		sb.WriteString(bullet(style.Render(icon), f.Message, width, 2))
	}

	sb.WriteString("\n\n")
	sb.WriteString(s.heading.Render("Summary"))
	sb.WriteString("\n")
	sb.WriteString(s.text.Render(Wrap(b.Summary, width, 2)))
	return sb.String()
}
