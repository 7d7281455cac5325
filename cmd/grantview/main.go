// Command grantview submits grant proposals for evaluation and browses the
// results in the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fwojciec/grantview"
	"github.com/fwojciec/grantview/bubbletea"
	"github.com/fwojciec/grantview/chroma"
	"github.com/fwojciec/grantview/clipboard"
	"github.com/fwojciec/grantview/config"
	"github.com/fwojciec/grantview/fs"
	gvhttp "github.com/fwojciec/grantview/http"
	"github.com/fwojciec/grantview/jsonl"
	gvlipgloss "github.com/fwojciec/grantview/lipgloss"
	"github.com/fwojciec/grantview/mimetype"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return NewRootCommand().ExecuteContext(ctx)
}

// cli holds the global flag values shared by every command.
type cli struct {
	configPath  string
	backendURL  string
	theme       string
	logLevel    string
	archivePath string
}

// NewRootCommand builds the grantview command tree.
func NewRootCommand() *cobra.Command {
	c := &cli{}
	var route string

	root := &cobra.Command{
		Use:           "grantview",
		Short:         "AI grant proposal evaluator",
		Long:          "Submit grant proposals to the evaluation backend and browse scores, critique and budget analysis in the terminal.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := grantview.ParseRoute(route)
			if err != nil {
				return err
			}
			return c.withApp(cmd, true, func(app *App) error {
				return app.Run(cmd.Context(), r)
			})
		},
	}
	root.Flags().StringVar(&route, "route", "/", "Screen to open: /, /results/<id> or /settings")

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Path to a config file")
	pf.StringVar(&c.backendURL, "backend-url", "", "Evaluation backend URL (overrides config)")
	pf.StringVar(&c.theme, "theme", "", "Color theme: dark or light (overrides config)")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn or error (overrides config)")

	root.AddCommand(
		c.submitCmd(),
		c.showCmd(),
		c.listCmd(),
		c.settingsCmd(),
		c.reportCmd(),
		c.exportCmd(),
		c.viewCmd(),
		c.verifyCmd(),
		c.statusCmd(),
	)
	return root
}

func (c *cli) submitCmd() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "submit <file>",
		Short: "Submit a PDF or DOCX proposal for evaluation and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, open, func(app *App) error {
				id, err := app.Submit(cmd.Context(), args[0])
				if err != nil || !open {
					return err
				}
				return app.Run(cmd.Context(), grantview.ResultsRoute(id))
			})
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Open the results in the terminal UI")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var (
		tabName string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one tab of an evaluation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := bubbletea.ParseTab(tabName)
			if err != nil {
				return err
			}
			return c.withApp(cmd, false, func(app *App) error {
				return app.Show(cmd.Context(), args[0], tab, asJSON)
			})
		},
	}
	cmd.Flags().StringVar(&tabName, "tab", "visual", "Tab to print: visual, detailed, critique or budget")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the evaluation record as JSON")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List evaluations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, false, func(app *App) error {
				return app.List(cmd.Context())
			})
		},
	}
}

func (c *cli) settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the backend settings",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, false, func(app *App) error {
				return app.ShowSettings(cmd.Context())
			})
		},
	}

	var maxBudget, chunkSize int64
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only the given flags are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch grantview.SettingsPatch
			if cmd.Flags().Changed("max-budget") {
				patch.MaxBudget = grantview.Int64(maxBudget)
			}
			if cmd.Flags().Changed("chunk-size") {
				patch.ChunkSize = grantview.Int64(chunkSize)
			}
			return c.withApp(cmd, false, func(app *App) error {
				return app.SaveSettings(cmd.Context(), patch)
			})
		},
	}
	set.Flags().Int64Var(&maxBudget, "max-budget", 0, "Maximum allowable budget in dollars")
	set.Flags().Int64Var(&chunkSize, "chunk-size", 0, "Document chunk size")

	cmd.AddCommand(get, set)
	return cmd
}

func (c *cli) reportCmd() *cobra.Command {
	var (
		copyLink bool
		out      string
	)
	cmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Print the report download link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, false, func(app *App) error {
				return app.Report(cmd.Context(), args[0], copyLink, out)
			})
		},
	}
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Copy the link to the clipboard")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Download the report to this file or directory")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <id>...",
		Short: "Append evaluations to a local JSONL archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, false, func(app *App) error {
				return app.Export(cmd.Context(), args)
			})
		},
	}
	cmd.Flags().StringVarP(&c.archivePath, "out", "o", "", "Archive file (default from config)")
	return cmd
}

func (c *cli) viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <id>",
		Short: "Open an archived evaluation without the backend",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, true, func(app *App) error {
				return app.View(cmd.Context(), args[0])
			})
		},
	}
	cmd.Flags().StringVar(&c.archivePath, "archive", "", "Archive file (default from config)")
	return cmd
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id>",
		Short: "Check that an evaluation's budget percentages and amounts add up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, false, func(app *App) error {
				return app.Verify(cmd.Context(), args[0])
			})
		},
	}
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, false, func(app *App) error {
				return app.Status(cmd.Context())
			})
		},
	}
}

// loadConfig applies the layered config files and environment, then flags.
func (c *cli) loadConfig(stderr io.Writer) (*config.Config, error) {
	bootstrap := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg, err := config.NewLoader(bootstrap).Load(c.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.backendURL != "" {
		cfg.BackendURL = c.backendURL
	}
	if c.theme != "" {
		cfg.Theme = c.theme
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.archivePath != "" {
		cfg.ArchivePath = c.archivePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog returns the log destination. The terminal UI owns the screen, so
// its logs go to a file.
func openLog(cfg *config.Config, tui bool, stderr io.Writer) (io.Writer, func(), error) {
	if !tui {
		return stderr, func() {}, nil
	}
	path := cfg.LogFile
	if path == "" {
		path = fs.DefaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// withApp builds the App from configuration and runs fn with it.
func (c *cli) withApp(cmd *cobra.Command, tui bool, fn func(*App) error) error {
	cfg, err := c.loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLog(cfg, tui, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	theme, err := gvlipgloss.ByName(cfg.Theme)
	if err != nil {
		return err
	}
	client, err := gvhttp.NewClient(cfg.BackendURL,
		gvhttp.WithTimeout(cfg.RequestTimeout),
		gvhttp.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	archivePath := cfg.ArchivePath
	if archivePath == "" {
		archivePath = fs.DefaultArchivePath()
	}
	archive := jsonl.NewArchive(archivePath)
	detector := mimetype.NewDetector()

	var clip grantview.Clipboard
	if sys := clipboard.NewSystem(); sys.Available() {
		clip = sys
	}

	uiOpts := []bubbletea.Option{
		bubbletea.WithTheme(theme),
		bubbletea.WithLogger(logger),
	}
	if cwd, err := os.Getwd(); err == nil {
		uiOpts = append(uiOpts, bubbletea.WithStartDir(cwd))
	}
	liveOpts := append(append([]bubbletea.Option(nil), uiOpts...), bubbletea.WithReportLocator(client))
	if clip != nil {
		liveOpts = append(liveOpts, bubbletea.WithClipboard(clip))
	}

	app := &App{
		Service:          client,
		Detector:         detector,
		Archive:          archive,
		Presenter:        bubbletea.NewPresenter(bubbletea.ServicesFor(client, detector), liveOpts...),
		ArchivePresenter: bubbletea.NewPresenter(bubbletea.Services{Fetcher: archive}, uiOpts...),
		Clipboard:        clip,
		Tokenizer:        chroma.NewTokenizer(theme.Palette()),
		Health:           client,
		Render: bubbletea.RenderOptions{
			Renderer: lipgloss.NewRenderer(cmd.OutOrStdout()),
			Theme:    theme,
		},
		Output: cmd.OutOrStdout(),
		Logger: logger,
	}
	logger.Debug("starting",
		slog.String("command", cmd.CommandPath()),
		slog.String("backend", cfg.BackendURL),
		slog.String("archive", archivePath))
	return fn(app)
}
