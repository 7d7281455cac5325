package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// ProjectConfigFile is the name of the project-level config file.
	ProjectConfigFile = "grantview.yaml"
	// UserConfigDir is the directory for user-level config, relative to home.
	UserConfigDir = ".config/grantview"
	// UserConfigFile is the name of the user-level config file.
	UserConfigFile = "config.yaml"
)

// Environment variables read by the loader.
const (
	EnvBackendURL     = "GRANTVIEW_BACKEND_URL"
	EnvRequestTimeout = "GRANTVIEW_REQUEST_TIMEOUT"
	EnvTheme          = "GRANTVIEW_THEME"
	EnvLogLevel       = "GRANTVIEW_LOG_LEVEL"
	EnvLogFile        = "GRANTVIEW_LOG_FILE"
	EnvArchive        = "GRANTVIEW_ARCHIVE"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger     *slog.Logger
	userPath   string
	projectDir string
	lookupEnv  func(string) (string, bool)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithUserConfigPath overrides the user config location.
func WithUserConfigPath(path string) LoaderOption {
	return func(l *Loader) {
		l.userPath = path
	}
}

// WithProjectDir sets where the search for grantview.yaml starts.
func WithProjectDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.projectDir = dir
	}
}

// WithEnv replaces os.LookupEnv.
func WithEnv(lookup func(string) (string, bool)) LoaderOption {
	return func(l *Loader) {
		l.lookupEnv = lookup
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger, lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	if l.userPath == "" {
		l.userPath = defaultUserConfigPath()
	}
	if l.projectDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			l.projectDir = cwd
		}
	}
	return l
}

// Load loads configuration with layered precedence:
//  1. defaults
//  2. user config (~/.config/grantview/config.yaml)
//  3. project config (grantview.yaml in the project dir or its parents)
//  4. explicit file, when explicitPath is not empty
//  5. GRANTVIEW_* environment variables
//
// Flags are applied by the caller on top of the result and validated with
// Validate.
func (l *Loader) Load(explicitPath string) (*Config, error) {
	config := DefaultConfig()

	if l.userPath != "" {
		if userConfig, err := LoadFromFile(l.userPath); err == nil {
			l.logger.Debug("loaded user config", slog.String("path", l.userPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("failed to load user config", slog.String("path", l.userPath), slog.String("error", err.Error()))
		}
	}

	if projectPath := l.findProjectConfig(); projectPath != "" {
		projectConfig, err := LoadFromFile(projectPath)
		if err != nil {
			l.logger.Warn("failed to load project config", slog.String("path", projectPath), slog.String("error", err.Error()))
		} else {
			l.logger.Debug("loaded project config", slog.String("path", projectPath))
			config.Merge(projectConfig)
		}
	}

	if explicitPath != "" {
		explicit, err := LoadFromFile(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded config", slog.String("path", explicitPath))
		config.Merge(explicit)
	}

	env, err := l.fromEnv()
	if err != nil {
		return nil, err
	}
	config.Merge(env)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (l *Loader) fromEnv() (*Config, error) {
	get := func(key string) string {
		v, _ := l.lookupEnv(key)
		return strings.TrimSpace(v)
	}

	c := &Config{
		BackendURL:  get(EnvBackendURL),
		Theme:       get(EnvTheme),
		LogLevel:    strings.ToLower(get(EnvLogLevel)),
		LogFile:     get(EnvLogFile),
		ArchivePath: get(EnvArchive),
	}
	if v := get(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvRequestTimeout, err)
		}
		c.RequestTimeout = d
	}
	return c, nil
}

func defaultUserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for grantview.yaml in the project dir and its parents.
func (l *Loader) findProjectConfig() string {
	if l.projectDir == "" {
		return ""
	}
	dir := l.projectDir
	for {
		path := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
