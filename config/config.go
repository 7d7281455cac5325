// Package config loads grantview's settings from YAML files, the environment
// and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default values.
const (
	DefaultBackendURL     = "http://localhost:8000"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultTheme          = "dark"
	DefaultLogLevel       = "info"
)

// Config is the client configuration.
type Config struct {
	BackendURL     string        `yaml:"backend_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gte=0"`
	Theme          string        `yaml:"theme" validate:"oneof=dark light"`
	LogLevel       string        `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFile        string        `yaml:"log_file,omitempty"`
	ArchivePath    string        `yaml:"archive_path,omitempty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		BackendURL:     DefaultBackendURL,
		RequestTimeout: DefaultRequestTimeout,
		Theme:          DefaultTheme,
		LogLevel:       DefaultLogLevel,
	}
}

var validate = validator.New()

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := yamlName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "url":
		return name + " must be a URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "gte":
		return name + " must not be negative"
	}
	return fmt.Sprintf("%s failed %s", name, fe.Tag())
}

func yamlName(field string) string {
	switch field {
	case "BackendURL":
		return "backend_url"
	case "RequestTimeout":
		return "request_timeout"
	case "LogLevel":
		return "log_level"
	}
	return strings.ToLower(field)
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// LoadFromFile reads a YAML file. Fields missing from the file stay zero so
// the result can be merged over another config.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &c, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Merge overlays the non-zero fields of other.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.BackendURL != "" {
		c.BackendURL = other.BackendURL
	}
	if other.RequestTimeout != 0 {
		c.RequestTimeout = other.RequestTimeout
	}
	if other.Theme != "" {
		c.Theme = other.Theme
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.ArchivePath != "" {
		c.ArchivePath = other.ArchivePath
	}
}
