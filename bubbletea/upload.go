package bubbletea

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
)

// UploadState is the state of the upload screen.
type UploadState int

// UploadState constants.
const (
	UploadEmpty UploadState = iota
	UploadFileSelected
	UploadSubmitting
)

func (s UploadState) String() string {
	switch s {
	case UploadEmpty:
		return "empty"
	case UploadFileSelected:
		return "file-selected"
	case UploadSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("UploadState(%d)", int(s))
}

// SubmitFailedMessage is shown when a submission fails for any reason.
const SubmitFailedMessage = "Evaluation failed. Please try again."

// UploadModel stages one document and submits it for evaluation.
type UploadModel struct {
	id        int64
	submitter grantview.EvaluationSubmitter
	detector  grantview.MIMEDetector
	cfg       config
	keymap    UploadKeyMap
	styles    palette

	state    UploadState
	doc      grantview.Document
	input    textinput.Model
	editing  bool
	browsing bool
	picker   filepicker.Model
	attempt  int
	stage    int
	spinner  spinner.Model
	progress progress.Model

	notice  string
	failure string
	width   int
	height  int
}

// NewUploadModel creates the upload screen. Staged files are checked with
// detector, which must not be nil.
func NewUploadModel(submitter grantview.EvaluationSubmitter, detector grantview.MIMEDetector, opts ...Option) UploadModel {
	cfg := newConfig(opts)
	p := cfg.theme.Palette()

	input := textinput.New()
	input.Prompt = "Path: "
	input.Placeholder = "/path/to/proposal.pdf"

	picker := filepicker.New()
	picker.AllowedTypes = append([]string(nil), grantview.AllowedExtensions...)
	if cfg.startDir != "" {
		picker.CurrentDirectory = cfg.startDir
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = colorStyle(p.Pink, cfg.renderer)

	return UploadModel{
		id:        nextScreenID(),
		submitter: submitter,
		detector:  detector,
		cfg:       cfg,
		keymap:    DefaultUploadKeyMap(),
		styles:    newPalette(cfg.theme, cfg.renderer),
		input:     input,
		picker:    picker,
		spinner:   sp,
		progress:  progress.New(progress.WithSolidFill(p.Purple), progress.WithoutPercentage(), progress.WithWidth(40)),
		notice:    cfg.notice,
	}
}

// ID identifies this screen instance.
func (m UploadModel) ID() int64 { return m.id }

// State returns the current upload state.
func (m UploadModel) State() UploadState { return m.state }

// Document returns the staged document, if any.
func (m UploadModel) Document() (grantview.Document, bool) {
	return m.doc, m.state != UploadEmpty
}

// Stage returns the index of the progress stage being shown.
func (m UploadModel) Stage() int { return m.stage }

// Failure returns the message of the last failed submission.
func (m UploadModel) Failure() string { return m.failure }

// Init implements tea.Model.
func (m UploadModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.progress.Width = min(60, max(10, msg.Width-8))
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(m.pickerSize())
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submittedMsg:
		return m.handleSubmitted(msg)

	case stageMsg:
		if m.state != UploadSubmitting || msg.attempt != m.attempt || msg.stage != m.stage {
			return m, nil
		}
		m.stage++
		return m, advanceStage(m.id, m.attempt, m.cfg.stages, m.stage)

	case spinner.TickMsg:
		if m.state != UploadSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.browsing {
		return m.updatePicker(msg)
	}
	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m UploadModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == UploadSubmitting {
		return m, nil
	}

	if m.browsing {
		if key.Matches(msg, m.keymap.CloseBrowse) {
			m.browsing = false
			return m, nil
		}
		return m.updatePicker(msg)
	}

	// Dropping a file on the terminal pastes its path.
	if msg.Paste {
		m.selectFile(string(msg.Runes))
		return m, nil
	}

	if m.editing {
		switch {
		case key.Matches(msg, m.keymap.Submit):
			m.selectFile(m.input.Value())
			return m, nil
		case key.Matches(msg, m.keymap.Cancel):
			m.editing = false
			m.input.Blur()
			m.input.Reset()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.EditPath):
		m.editing = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keymap.Browse):
		m.browsing = true
		m.picker, _ = m.picker.Update(m.pickerSize())
		return m, m.picker.Init()
	case key.Matches(msg, m.keymap.Remove):
		if m.state == UploadFileSelected {
			m.state = UploadEmpty
			m.doc = grantview.Document{}
			m.failure = ""
		}
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		if m.state == UploadFileSelected {
			return m.submit()
		}
	}
	return m, nil
}

func (m UploadModel) pickerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.width, Height: max(5, m.height-4)}
}

func (m UploadModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		if m.selectFile(path) {
			m.browsing = false
		}
		return m, cmd
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.cfg.logger.Debug("file not selectable", slog.String("path", path))
	}
	return m, cmd
}

// selectFile stages path, replacing any staged file. A rejected file leaves
// the state unchanged.
func (m *UploadModel) selectFile(path string) bool {
	path = cleanDroppedPath(path)
	if path == "" {
		return false
	}
	doc, err := grantview.NewDocument(path, m.detector)
	if err != nil {
		m.cfg.logger.Debug("file rejected", slog.String("path", path), slog.String("error", err.Error()))
		return false
	}
	m.doc = doc
	m.state = UploadFileSelected
	m.failure = ""
	m.editing = false
	m.input.Blur()
	m.input.Reset()
	return true
}

// cleanDroppedPath undoes the quoting terminals apply to dropped paths.
func cleanDroppedPath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) >= 2 {
		first, last := path[0], path[len(path)-1]
		if (first == '\'' || first == '"') && first == last {
			return path[1 : len(path)-1]
		}
	}
	path = strings.TrimPrefix(path, "file://")
	return strings.ReplaceAll(path, `\ `, " ")
}

func (m UploadModel) submit() (tea.Model, tea.Cmd) {
	m.state = UploadSubmitting
	m.attempt++
	m.stage = 0
	m.failure = ""
	m.notice = ""

	ctx, doc, submitter, id := m.cfg.ctx, m.doc, m.submitter, m.id
	submit := func() tea.Msg {
		evaluationID, err := submitter.Submit(ctx, doc)
		return submittedMsg{scope: scope{screen: id}, evaluationID: evaluationID, err: err}
	}
	return m, tea.Batch(submit, m.spinner.Tick, advanceStage(m.id, m.attempt, m.cfg.stages, 0))
}

func (m UploadModel) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || msg.evaluationID == "" {
		attrs := []any{slog.String("file", m.doc.Name)}
		if msg.err != nil {
			attrs = append(attrs, slog.String("error", msg.err.Error()))
		}
		m.cfg.logger.Error("evaluation failed", attrs...)
		m.state = UploadFileSelected
		m.failure = SubmitFailedMessage
		return m, nil
	}
	m.cfg.logger.Info("evaluation created", slog.String("id", msg.evaluationID), slog.String("file", m.doc.Name))
	return m, navigate(grantview.ResultsRoute(msg.evaluationID), "")
}

// View implements tea.Model.
func (m UploadModel) View() string {
	s := m.styles
	var sb strings.Builder

	sb.WriteString(s.title.Render("AI Grant Evaluator"))
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render("Upload your grant proposal and receive a detailed evaluation with scoring, critiques and recommendations."))
	sb.WriteString("\n\n")
	if m.notice != "" {
		sb.WriteString(s.notice.Render(m.notice))
		sb.WriteString("\n\n")
	}

	switch {
	case m.state == UploadSubmitting:
		sb.WriteString(m.viewSubmitting())
	case m.browsing:
		sb.WriteString(s.text.Render("Select a file"))
		sb.WriteString(" ")
		sb.WriteString(s.muted.Render("(PDF or DOCX)"))
		sb.WriteString("\n")
		sb.WriteString(m.picker.View())
		sb.WriteString("\n")
		sb.WriteString(s.muted.Render("enter select • q close"))
	default:
		sb.WriteString(m.viewDropZone())
	}
	return sb.String()
}

func (m UploadModel) viewDropZone() string {
	s := m.styles
	var body strings.Builder
	if m.state == UploadFileSelected {
		body.WriteString(s.text.Bold(true).Render(m.doc.Name))
		body.WriteString("\n")
		body.WriteString(s.muted.Render(grantview.FormatFileSize(m.doc.Size)))
	} else {
		body.WriteString(s.text.Bold(true).Render("Drag & Drop Your Grant"))
		body.WriteString("\n")
		body.WriteString(s.muted.Render("or browse files (PDF or DOCX)"))
	}

	var sb strings.Builder
	sb.WriteString(s.border.Render(body.String()))
	sb.WriteString("\n")
	if m.editing {
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
	}
	if m.failure != "" {
		sb.WriteString(s.failure.Render(m.failure))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render(m.help()))
	return sb.String()
}

func (m UploadModel) help() string {
	if m.editing {
		return "enter select • esc cancel"
	}
	if m.state == UploadFileSelected {
		return "enter evaluate • x remove • / replace • b browse"
	}
	return "/ type a path • b browse"
}

func (m UploadModel) viewSubmitting() string {
	s := m.styles
	stages := m.cfg.stages
	var sb strings.Builder
	sb.WriteString(m.spinner.View())
	sb.WriteString(" ")
	if m.stage < len(stages) {
		sb.WriteString(s.text.Bold(true).Render(stages[m.stage].Label))
	}
	sb.WriteString("\n\n")
	for i, st := range stages {
		var marker lipgloss.Style
		dot := "●"
		switch {
		case i < m.stage:
			marker = s.success
		case i == m.stage:
			marker = s.notice
		default:
			marker = s.muted
			dot = "○"
		}
		sb.WriteString("  ")
		sb.WriteString(marker.Render(dot))
		sb.WriteString(" ")
		if i <= m.stage {
			sb.WriteString(s.text.Render(st.Label))
		} else {
			sb.WriteString(s.muted.Render(st.Label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(stageProgress(m.stage, len(stages))))
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render(fmt.Sprintf("Processing %s...", m.doc.Name)))
	return sb.String()
}
