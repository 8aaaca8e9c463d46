package domain

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// ConfigTemplate returns the commented configuration template.
func ConfigTemplate() string {
	return configTemplateContent
}

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string     `toml:"-"`
	Create   CreateConfig `toml:"create"`
	GitHub   GitHubConfig `toml:"github"`
	Log      LogConfig    `toml:"log"`
	GH       GHConfig     `toml:"gh"`
}

// CreateConfig holds defaults for the create command from [create] section.
type CreateConfig struct {
	Ext      string `toml:"ext,omitempty"`      // Input format: "csv" (default) or "yaml"
	Backend  string `toml:"backend,omitempty"`  // "gh" (default) or "api"
	Repo     string `toml:"repo,omitempty"`     // OWNER/REPO; empty = tracker default
	OnError  string `toml:"on_error,omitempty"` // "abort" (default) or "continue"
	Timeout  string `toml:"timeout,omitempty"`  // Per-row timeout, e.g. "30s"; empty or "0s" = none
	Interval string `toml:"interval,omitempty"` // Minimum delay between rows, e.g. "1s"
}

// GHConfig holds settings for the gh backend from [gh] section.
type GHConfig struct {
	Path string `toml:"path,omitempty"` // gh executable (default: "gh" from PATH)
}

// GitHubConfig holds settings for the api backend from [github] section.
type GitHubConfig struct {
	Token   string `toml:"token,omitempty"`    // API token; falls back to GITHUB_TOKEN / GH_TOKEN
	BaseURL string `toml:"base_url,omitempty"` // GitHub Enterprise API URL
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn (default), error
	File  string `toml:"file,omitempty"`  // Log file path; empty = stderr
}

// NewDefaultConfig returns the configuration used when no file sets a value.
func NewDefaultConfig() *Config {
	return &Config{
		Create: CreateConfig{
			Ext:     string(DefaultFormat),
			Backend: string(BackendGH),
			OnError: string(PolicyAbort),
		},
		GH: GHConfig{
			Path: DefaultGHPath,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// TimeoutDuration parses Create.Timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	return parseOptionalDuration("create.timeout", c.Create.Timeout)
}

// IntervalDuration parses Create.Interval. Empty means no delay.
func (c *Config) IntervalDuration() (time.Duration, error) {
	return parseOptionalDuration("create.interval", c.Create.Interval)
}

func parseOptionalDuration(key, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}

// DefaultGHPath is the gh executable looked up in PATH.
const DefaultGHPath = "gh"

// Directory and file names for gh-issues.
const (
	AppDirName         = "gh-issues"       // Directory name under the user config home
	ConfigFileName     = "config.toml"     // Global config file name
	RepoConfigFileName = ".gh-issues.toml" // Config file name in the working directory
)

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// RepoConfigPath returns the working directory config path.
func RepoConfigPath(dir string) string {
	return filepath.Join(dir, RepoConfigFileName)
}
