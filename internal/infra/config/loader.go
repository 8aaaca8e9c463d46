// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	repoDir       string // Directory holding .gh-issues.toml (usually the working directory)
	globalConfDir string // Path to global config directory (e.g., ~/.config/gh-issues)
}

// NewLoader creates a new Loader.
func NewLoader(repoDir string) *Loader {
	return &Loader{
		repoDir:       repoDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(repoDir, globalConfDir string) *Loader {
	return &Loader{
		repoDir:       repoDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// GlobalPath returns the global config file path, or "" when unknown.
func (l *Loader) GlobalPath() string {
	if l.globalConfDir == "" {
		return ""
	}
	return filepath.Join(l.globalConfDir, domain.ConfigFileName)
}

// RepoPath returns the per-project config file path.
func (l *Loader) RepoPath() string {
	return domain.RepoConfigPath(l.repoDir)
}

// Load returns the merged configuration (repo + global).
// Repository config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	repo, err := l.loadFile(l.RepoPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- repo (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if repo != nil {
		base = mergeConfigs(base, repo)
	}
	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	path := l.GlobalPath()
	if path == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(path)
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}

		var fields map[string]*string
		switch section {
		case "create":
			fields = map[string]*string{
				"ext":      &res.Create.Ext,
				"backend":  &res.Create.Backend,
				"repo":     &res.Create.Repo,
				"on_error": &res.Create.OnError,
				"timeout":  &res.Create.Timeout,
				"interval": &res.Create.Interval,
			}
		case "gh":
			fields = map[string]*string{
				"path": &res.GH.Path,
			}
		case "github":
			fields = map[string]*string{
				"token":    &res.GitHub.Token,
				"base_url": &res.GitHub.BaseURL,
			}
		case "log":
			fields = map[string]*string{
				"level": &res.Log.Level,
				"file":  &res.Log.File,
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}

		for k, v := range m {
			dst, known := fields[k]
			if !known {
				warnings = append(warnings, fmt.Sprintf("unknown key in [%s]: %s", section, k))
				continue
			}
			s, ok := v.(string)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("invalid value for %s.%s: expected a string", section, k))
				continue
			}
			*dst = s
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.Warnings...)

	mergeString(&result.Create.Ext, override.Create.Ext)
	mergeString(&result.Create.Backend, override.Create.Backend)
	mergeString(&result.Create.Repo, override.Create.Repo)
	mergeString(&result.Create.OnError, override.Create.OnError)
	mergeString(&result.Create.Timeout, override.Create.Timeout)
	mergeString(&result.Create.Interval, override.Create.Interval)
	mergeString(&result.GH.Path, override.GH.Path)
	mergeString(&result.GitHub.Token, override.GitHub.Token)
	mergeString(&result.GitHub.BaseURL, override.GitHub.BaseURL)
	mergeString(&result.Log.Level, override.Log.Level)
	mergeString(&result.Log.File, override.Log.File)

	return &result
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
