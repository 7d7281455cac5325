package bubbletea

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/grantview"
)

// Settings screen messages.
const (
	SettingsSavedMessage      = "Settings saved successfully!"
	SettingsSaveFailedMessage = "Failed to save settings. Please try again."
	SettingsLoadFailedMessage = "Could not load settings. Showing defaults."
)

// settingsMessageTTL is how long a save result stays on screen.
const settingsMessageTTL = 3 * time.Second

type settingsField struct {
	label string
	help  string
	name  string
	input textinput.Model
	err   string
}

const (
	fieldMaxBudget = iota
	fieldChunkSize
)

// SettingsModel edits the backend settings. Edits live only in this model
// until saved.
type SettingsModel struct {
	id      int64
	service grantview.SettingsService
	cfg     config
	keymap  SettingsKeyMap
	styles  palette
	spinner spinner.Model

	loading  bool
	saving   bool
	baseline grantview.Settings
	fields   [2]settingsField
	focus    int

	message    string
	messageErr bool
	messageSeq int
}

// formDefaults fill the form until the stored settings arrive and stay in
// place when they cannot be loaded. They match the input placeholders.
var formDefaults = grantview.Settings{MaxBudget: 500000, ChunkSize: 1000}

// NewSettingsModel creates the settings screen.
func NewSettingsModel(service grantview.SettingsService, opts ...Option) SettingsModel {
	cfg := newConfig(opts)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = colorStyle(cfg.theme.Palette().Purple, cfg.renderer)

	fields := [2]settingsField{
		{
			label: "Maximum Allowable Budget ($)",
			name:  "Maximum Allowable Budget",
			help:  "Sets the budget threshold for flagging proposals that exceed this amount.",
			input: numberInput("500000"),
		},
		{
			label: "Document Chunk Size",
			name:  "Document Chunk Size",
			help:  "Controls how the AI processes large documents. Larger chunks may provide more context but use more resources.",
			input: numberInput("1000"),
		},
	}

	m := SettingsModel{
		id:      nextScreenID(),
		service: service,
		cfg:     cfg,
		keymap:  DefaultSettingsKeyMap(),
		styles:  newPalette(cfg.theme, cfg.renderer),
		spinner: sp,
		loading: true,
		fields:  fields,
		message: cfg.notice,
	}
	m.setValues(formDefaults)
	return m
}

func numberInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 24
	return in
}

// ID identifies this screen instance.
func (m SettingsModel) ID() int64 { return m.id }

// Loading reports whether the settings are still being fetched.
func (m SettingsModel) Loading() bool { return m.loading }

// Saving reports whether a save is in flight.
func (m SettingsModel) Saving() bool { return m.saving }

// Values returns the form's current text for max budget and chunk size.
func (m SettingsModel) Values() (maxBudget, chunkSize string) {
	return m.fields[fieldMaxBudget].input.Value(), m.fields[fieldChunkSize].input.Value()
}

// Baseline returns the last settings loaded from or saved to the backend.
func (m SettingsModel) Baseline() grantview.Settings { return m.baseline }

// Message returns the status message and whether it reports an error.
func (m SettingsModel) Message() (string, bool) { return m.message, m.messageErr }

// FieldErrors returns the inline validation errors, empty when valid.
func (m SettingsModel) FieldErrors() []string {
	var errs []string
	for _, f := range m.fields {
		if f.err != "" {
			errs = append(errs, f.err)
		}
	}
	return errs
}

func (m *SettingsModel) setValues(s grantview.Settings) {
	m.fields[fieldMaxBudget].input.SetValue(strconv.FormatInt(s.MaxBudget, 10))
	m.fields[fieldChunkSize].input.SetValue(strconv.FormatInt(s.ChunkSize, 10))
}

// Init implements tea.Model.
func (m SettingsModel) Init() tea.Cmd {
	ctx, service, screen := m.cfg.ctx, m.service, m.id
	load := func() tea.Msg {
		s, err := service.FetchSettings(ctx)
		return settingsLoadedMsg{scope: scope{screen: screen}, settings: s, err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

// Update implements tea.Model.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		return m.handleLoaded(msg)
	case settingsSavedMsg:
		return m.handleSaved(msg)
	case clearMessageMsg:
		if msg.seq == m.messageSeq {
			m.message = ""
		}
		return m, nil
	case spinner.TickMsg:
		if !m.loading && !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.loading || m.saving {
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m SettingsModel) handleLoaded(msg settingsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	switch {
	case grantview.IsNotFound(msg.err), msg.err == nil && msg.settings == nil:
		m.cfg.logger.Info("settings not found")
		return m, navigate(grantview.UploadRoute(), "")
	case msg.err != nil:
		m.cfg.logger.Error("fetch settings", slog.String("error", msg.err.Error()))
		m.baseline = formDefaults
		m.setValues(m.baseline)
		m.message, m.messageErr = SettingsLoadFailedMessage, true
	default:
		m.baseline = *msg.settings
		m.setValues(m.baseline)
	}
	return m, m.fields[m.focus].input.Focus()
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Save):
		return m.save()
	case key.Matches(msg, m.keymap.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keymap.Prev):
		return m.moveFocus(-1)
	}
	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	m.fields[m.focus].err = ""
	return m, cmd
}

func (m SettingsModel) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.fields[m.focus].input.Blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	return m, m.fields[m.focus].input.Focus()
}

// parse reads a positive integer from a field, recording an inline error.
func (f *settingsField) parse() (int64, bool) {
	raw := strings.ReplaceAll(strings.TrimSpace(f.input.Value()), ",", "")
	if raw == "" {
		f.err = f.name + " is required"
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		f.err = f.name + " must be a whole number"
		return 0, false
	}
	if v <= 0 {
		f.err = f.name + " must be greater than zero"
		return 0, false
	}
	f.err = ""
	return v, true
}

func (m SettingsModel) save() (tea.Model, tea.Cmd) {
	maxBudget, okBudget := m.fields[fieldMaxBudget].parse()
	chunkSize, okChunk := m.fields[fieldChunkSize].parse()
	if !okBudget || !okChunk {
		m.message = ""
		return m, nil
	}

	patch := grantview.SettingsPatch{
		MaxBudget: grantview.Int64(maxBudget),
		ChunkSize: grantview.Int64(chunkSize),
	}
	if err := patch.Validate(); err != nil {
		m.message, m.messageErr = err.Error(), true
		return m, nil
	}

	m.saving = true
	m.message = ""
	ctx, service, screen := m.cfg.ctx, m.service, m.id
	send := func() tea.Msg {
		s, err := service.SaveSettings(ctx, patch)
		return settingsSavedMsg{scope: scope{screen: screen}, settings: s, err: err}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

func (m SettingsModel) handleSaved(msg settingsSavedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	m.messageSeq++
	if msg.err != nil || msg.settings == nil {
		if msg.err != nil {
			m.cfg.logger.Error("save settings", slog.String("error", msg.err.Error()))
		}
		m.message, m.messageErr = SettingsSaveFailedMessage, true
		return m, nil
	}

	m.baseline = *msg.settings
	m.setValues(m.baseline)
	m.message, m.messageErr = SettingsSavedMessage, false
	seq, screen := m.messageSeq, m.id
	return m, tea.Tick(settingsMessageTTL, func(time.Time) tea.Msg {
		return clearMessageMsg{scope: scope{screen: screen}, seq: seq}
	})
}

// View implements tea.Model.
func (m SettingsModel) View() string {
	s := m.styles
	var sb strings.Builder
	sb.WriteString(s.title.Render("Settings"))
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render("Configure evaluation parameters"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(s.muted.Render("Loading settings..."))
		return sb.String()
	}

	for i, f := range m.fields {
		label := s.text.Render(f.label)
		if i == m.focus {
			label = s.notice.Bold(true).Render(f.label)
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(s.border.Render(f.input.View()))
		sb.WriteString("\n")
		if f.err != "" {
			sb.WriteString(s.failure.Render(f.err))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(s.text.Bold(true).Render("About These Settings"))
	for _, f := range m.fields {
		sb.WriteString("\n")
		sb.WriteString(s.muted.Render("• " + f.name + ": " + f.help))
	}
	sb.WriteString("\n\n")

	switch {
	case m.saving:
		sb.WriteString(m.spinner.View())
		sb.WriteString(" ")
		sb.WriteString(s.muted.Render("Saving..."))
	case m.message != "" && m.messageErr:
		sb.WriteString(s.failure.Render(m.message))
	case m.message != "":
		sb.WriteString(s.success.Render(m.message))
	}
	sb.WriteString("\n")
	sb.WriteString(s.muted.Render("tab next field • ctrl+s save"))
	return sb.String()
}
