package bubbletea

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/grantview"
)

// ErrScreenUnavailable is returned when a route needs a service that is not configured.
var ErrScreenUnavailable = errors.New("screen unavailable")

// Services are the backends the screens use. A nil service disables the
// screens that need it; navigating to a disabled screen quits.
type Services struct {
	Submitter grantview.EvaluationSubmitter
	Fetcher   grantview.EvaluationFetcher
	Settings  grantview.SettingsService
	Detector  grantview.MIMEDetector
}

// ServicesFor wires every screen to svc.
func ServicesFor(svc grantview.EvaluationService, detector grantview.MIMEDetector) Services {
	return Services{
		Submitter: svc,
		Fetcher:   svc,
		Settings:  svc,
		Detector:  detector,
	}
}

func (s Services) available(screen grantview.Screen) bool {
	switch screen {
	case grantview.ScreenUpload:
		return s.Submitter != nil && s.Detector != nil
	case grantview.ScreenResults:
		return s.Fetcher != nil
	case grantview.ScreenSettings:
		return s.Settings != nil
	}
	return false
}

// screen is a mounted screen model.
type screen interface {
	tea.Model
	ID() int64
}

// App is the root model. It owns the current route and the one mounted
// screen; results of work started by an unmounted screen are dropped.
type App struct {
	route    grantview.Route
	screen   screen
	services Services
	cfg      config
	keymap   AppKeyMap
	styles   palette
	width    int
	height   int
}

// NewApp creates the root model showing route.
func NewApp(route grantview.Route, services Services, opts ...Option) (App, error) {
	if !services.available(route.Screen) {
		return App{}, fmt.Errorf("%s: %w", route.Path(), ErrScreenUnavailable)
	}
	cfg := newConfig(opts)
	a := App{
		services: services,
		cfg:      cfg,
		keymap:   DefaultAppKeyMap(),
		styles:   newPalette(cfg.theme, cfg.renderer),
	}
	a.route = route
	a.screen = a.build(route, cfg.notice)
	return a, nil
}

// Route returns the route of the mounted screen.
func (a App) Route() grantview.Route { return a.route }

// Screen returns the mounted screen model.
func (a App) Screen() tea.Model { return a.screen }

func (a App) build(route grantview.Route, notice string) screen {
	opts := append(a.cfg.options(), WithNotice(notice))
	switch route.Screen {
	case grantview.ScreenResults:
		return NewResultsModel(route.EvaluationID, a.services.Fetcher, opts...)
	case grantview.ScreenSettings:
		return NewSettingsModel(a.services.Settings, opts...)
	default:
		return NewUploadModel(a.services.Submitter, a.services.Detector, opts...)
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.screen.Init()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Upload):
			return a.navigate(NavigateMsg{Route: grantview.UploadRoute()})
		case key.Matches(msg, a.keymap.Settings):
			return a.navigate(NavigateMsg{Route: grantview.SettingsRoute()})
		}

	case NavigateMsg:
		return a.navigate(msg)

	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a.forward(a.screenSize())

	case scopedMsg:
		if msg.screenID() != a.screen.ID() {
			a.cfg.logger.Debug("dropped result of unmounted screen", slog.String("type", fmt.Sprintf("%T", msg)))
			return a, nil
		}
	}
	return a.forward(msg)
}

func (a App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.screen.Update(msg)
	a.screen = m.(screen)
	return a, cmd
}

// navigate unmounts the current screen and mounts a fresh one for the route.
func (a App) navigate(msg NavigateMsg) (tea.Model, tea.Cmd) {
	if !a.services.available(msg.Route.Screen) {
		a.cfg.logger.Debug("screen unavailable, quitting", slog.String("route", msg.Route.Path()))
		return a, tea.Quit
	}
	a.cfg.logger.Debug("navigate", slog.String("from", a.route.Path()), slog.String("to", msg.Route.Path()))

	a.route = msg.Route
	a.screen = a.build(msg.Route, msg.Notice)
	cmd := a.screen.Init()
	if a.width > 0 {
		m, sizeCmd := a.screen.Update(a.screenSize())
		a.screen = m.(screen)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return a, cmd
}

const footerHeight = 1

func (a App) screenSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: max(1, a.height-footerHeight)}
}

// View implements tea.Model.
func (a App) View() string {
	return a.screen.View() + "\n" + a.styles.muted.Render(truncate(a.footer(), a.width))
}

func (a App) footer() string {
	var parts []string
	if a.services.available(grantview.ScreenUpload) {
		parts = append(parts, "ctrl+n new evaluation")
	}
	if a.services.available(grantview.ScreenSettings) {
		parts = append(parts, "ctrl+o settings")
	}
	parts = append(parts, "ctrl+c quit")
	return strings.Join(parts, " • ")
}
