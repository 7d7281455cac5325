// Package bubbletea implements the grantview terminal UI using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/grantview"
	gvlipgloss "github.com/fwojciec/grantview/lipgloss"
)

// Option configures the App and the screen models.
type Option func(*config)

type config struct {
	ctx       context.Context
	renderer  *lipgloss.Renderer
	theme     grantview.Theme
	logger    *slog.Logger
	notice    string
	stages    []Stage
	startDir  string
	reports   grantview.ReportLocator
	clipboard grantview.Clipboard
}

func newConfig(opts []Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ctx == nil {
		cfg.ctx = context.Background()
	}
	if cfg.theme == nil {
		cfg.theme = gvlipgloss.DefaultTheme()
	}
	if cfg.renderer == nil {
		cfg.renderer = lipgloss.DefaultRenderer()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if len(cfg.stages) == 0 {
		cfg.stages = DefaultStages()
	}
	return cfg
}

// options rebuilds the option list for screens created by the App.
func (c config) options() []Option {
	return []Option{
		WithContext(c.ctx),
		WithRenderer(c.renderer),
		WithTheme(c.theme),
		WithLogger(c.logger),
		WithStages(c.stages...),
		WithStartDir(c.startDir),
		WithReportLocator(c.reports),
		WithClipboard(c.clipboard),
	}
}

// WithContext sets the context passed to backend calls.
func WithContext(ctx context.Context) Option {
	return func(c *config) {
		c.ctx = ctx
	}
}

// WithRenderer sets a custom lipgloss renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(c *config) {
		c.renderer = r
	}
}

// WithTheme sets the theme.
func WithTheme(t grantview.Theme) Option {
	return func(c *config) {
		c.theme = t
	}
}

// WithLogger sets the logger. Logs must not go to the terminal the UI draws on.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithNotice shows a one-off message on the first screen.
func WithNotice(notice string) Option {
	return func(c *config) {
		c.notice = notice
	}
}

// WithStages replaces the progress stages shown while a submission is in flight.
func WithStages(stages ...Stage) Option {
	return func(c *config) {
		c.stages = stages
	}
}

// WithStartDir sets where the file browser opens.
func WithStartDir(dir string) Option {
	return func(c *config) {
		c.startDir = dir
	}
}

// WithReportLocator enables report links on the results screen.
func WithReportLocator(r grantview.ReportLocator) Option {
	return func(c *config) {
		c.reports = r
	}
}

// WithClipboard enables copying report links.
func WithClipboard(cb grantview.Clipboard) Option {
	return func(c *config) {
		c.clipboard = cb
	}
}
