package bubbletea

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
)

// Notices shown on the upload screen when results cannot be displayed.
const (
	NoticeNotFound   = "Evaluation not found"
	NoticeLoadFailed = "Could not load evaluation"
)

// ResultsModel fetches one evaluation and shows it in tabs.
type ResultsModel struct {
	id           int64
	evaluationID string
	fetcher      grantview.EvaluationFetcher
	cfg          config
	keymap       ResultsKeyMap
	styles       palette

	evaluation *grantview.Evaluation
	header     string
	tab        Tab
	status     string

	spinner    spinner.Model
	viewport   viewport.Model
	ready      bool
	width      int
	height     int
	pendingKey string
}

// NewResultsModel creates the results screen for evaluationID.
func NewResultsModel(evaluationID string, fetcher grantview.EvaluationFetcher, opts ...Option) ResultsModel {
	cfg := newConfig(opts)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = colorStyle(cfg.theme.Palette().Purple, cfg.renderer)

	return ResultsModel{
		id:           nextScreenID(),
		evaluationID: evaluationID,
		fetcher:      fetcher,
		cfg:          cfg,
		keymap:       DefaultResultsKeyMap(),
		styles:       newPalette(cfg.theme, cfg.renderer),
		tab:          TabVisual,
		spinner:      sp,
		status:       cfg.notice,
	}
}

// ID identifies this screen instance.
func (m ResultsModel) ID() int64 { return m.id }

// Loading reports whether the evaluation is still being fetched.
func (m ResultsModel) Loading() bool { return m.evaluation == nil }

// Evaluation returns the loaded evaluation.
func (m ResultsModel) Evaluation() (*grantview.Evaluation, bool) {
	return m.evaluation, m.evaluation != nil
}

// ActiveTab returns the selected tab.
func (m ResultsModel) ActiveTab() Tab { return m.tab }

// Status returns the status line text.
func (m ResultsModel) Status() string { return m.status }

// Init implements tea.Model.
func (m ResultsModel) Init() tea.Cmd {
	ctx, fetcher, id, screen := m.cfg.ctx, m.fetcher, m.evaluationID, m.id
	fetch := func() tea.Msg {
		e, err := fetcher.FetchEvaluation(ctx, id)
		return evaluationLoadedMsg{scope: scope{screen: screen}, evaluation: e, err: err}
	}
	return tea.Batch(fetch, m.spinner.Tick)
}

// Update implements tea.Model.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationLoadedMsg:
		return m.handleLoaded(msg)

	case reportLinkMsg:
		m.status = m.reportStatus(msg)
		return m, nil

	case spinner.TickMsg:
		if m.evaluation != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if m.evaluation == nil {
			return m, nil
		}
		return m.handleKey(msg)
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ResultsModel) handleLoaded(msg evaluationLoadedMsg) (tea.Model, tea.Cmd) {
	log := m.cfg.logger.With(slog.String("id", m.evaluationID))
	switch {
	case grantview.IsNotFound(msg.err), msg.err == nil && msg.evaluation == nil:
		log.Info("evaluation not found")
		return m, navigate(grantview.UploadRoute(), NoticeNotFound)
	case msg.err != nil:
		log.Error("fetch evaluation", slog.String("error", msg.err.Error()))
		return m, navigate(grantview.UploadRoute(), NoticeLoadFailed)
	}

	header, err := RenderHeader(*msg.evaluation, m.renderOptions())
	if err != nil {
		log.Error("render evaluation", slog.String("error", err.Error()))
		return m, navigate(grantview.UploadRoute(), NoticeLoadFailed)
	}

	m.evaluation = msg.evaluation
	m.header = header
	m.resize()
	return m, nil
}

func (m ResultsModel) renderOptions() RenderOptions {
	return RenderOptions{Renderer: m.cfg.renderer, Theme: m.cfg.theme, Width: m.width}
}

const (
	helpHeight   = 1
	statusHeight = 1
)

// resize fits the viewport below the header and tab bar.
func (m *ResultsModel) resize() {
	if m.evaluation == nil || m.width == 0 {
		return
	}
	if header, err := RenderHeader(*m.evaluation, m.renderOptions()); err == nil {
		m.header = header
	}
	chrome := lipgloss.Height(m.header) + 1 + lipgloss.Height(RenderTabBar(m.tab, m.renderOptions())) + 1 + statusHeight + helpHeight
	height := max(1, m.height-chrome)

	if !m.ready {
		m.viewport = viewport.New(m.width, height)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.viewport.SetContent(RenderTab(*m.evaluation, m.tab, m.renderOptions()))
}

func (m ResultsModel) selectTab(t Tab) (tea.Model, tea.Cmd) {
	if t == m.tab {
		return m, nil
	}
	m.tab = t
	if m.ready {
		m.viewport.SetContent(RenderTab(*m.evaluation, m.tab, m.renderOptions()))
		m.viewport.GotoTop()
	}
	return m, nil
}

func (m ResultsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// gg goes to top
	if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
		m.viewport.GotoTop()
		m.pendingKey = ""
		return m, nil
	}
	if key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = "g"
		return m, nil
	}
	m.pendingKey = ""

	switch {
	case key.Matches(msg, m.keymap.Visual):
		return m.selectTab(TabVisual)
	case key.Matches(msg, m.keymap.Detailed):
		return m.selectTab(TabDetailed)
	case key.Matches(msg, m.keymap.Critique):
		return m.selectTab(TabCritique)
	case key.Matches(msg, m.keymap.Budget):
		return m.selectTab(TabBudget)
	case key.Matches(msg, m.keymap.NextTab):
		return m.selectTab(m.tab.next())
	case key.Matches(msg, m.keymap.PrevTab):
		return m.selectTab(m.tab.prev())
	case key.Matches(msg, m.keymap.Report):
		return m, m.reportLink()
	case key.Matches(msg, m.keymap.GotoBottom):
		m.viewport.GotoBottom()
		return m, nil
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keymap.Up):
		m.viewport.ScrollUp(1)
		return m, nil
	case key.Matches(msg, m.keymap.Down):
		m.viewport.ScrollDown(1)
		return m, nil
	}
	return m, nil
}

var errNoReports = errors.New("report download is not available")

func (m ResultsModel) reportLink() tea.Cmd {
	ctx, reports, clipboard, id, screen := m.cfg.ctx, m.cfg.reports, m.cfg.clipboard, m.evaluationID, m.id
	return func() tea.Msg {
		msg := reportLinkMsg{scope: scope{screen: screen}}
		if reports == nil {
			msg.err = errNoReports
			return msg
		}
		msg.url, msg.err = reports.ReportURL(ctx, id)
		if msg.err != nil || clipboard == nil {
			return msg
		}
		msg.copyErr = clipboard.Copy(msg.url)
		msg.copied = msg.copyErr == nil
		return msg
	}
}

func (m ResultsModel) reportStatus(msg reportLinkMsg) string {
	switch {
	case errors.Is(msg.err, errNoReports):
		return "Report download is not available offline"
	case msg.err != nil:
		m.cfg.logger.Error("report link", slog.String("id", m.evaluationID), slog.String("error", msg.err.Error()))
		return "Could not get the report link"
	case msg.copied:
		return "Report: " + msg.url + " (copied)"
	}
	if msg.copyErr != nil {
		m.cfg.logger.Debug("copy report link", slog.String("error", msg.copyErr.Error()))
	}
	return "Report: " + msg.url
}

// View implements tea.Model.
func (m ResultsModel) View() string {
	s := m.styles
	if m.evaluation == nil {
		return m.spinner.View() + " " + s.muted.Render("Loading evaluation...")
	}
	if !m.ready {
		return s.muted.Render("Loading...")
	}

	var sb strings.Builder
	sb.WriteString(m.header)
	sb.WriteString("\n\n")
	sb.WriteString(RenderTabBar(m.tab, m.renderOptions()))
	sb.WriteString("\n\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(s.notice.Render(truncate(m.status, m.width)))
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render(truncate("1-4/tab switch tabs • j/k scroll • d report link", m.width)))
	return sb.String()
}
