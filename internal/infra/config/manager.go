package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/gh-issues/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager inspects and creates configuration files.
type Manager struct {
	loader *Loader
}

// NewManager creates a Manager for the same files as loader.
func NewManager(loader *Loader) *Manager {
	return &Manager{loader: loader}
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	return readConfigInfo(m.loader.GlobalPath())
}

// GetRepoConfigInfo returns information about the repository config file.
func (m *Manager) GetRepoConfigInfo() domain.ConfigInfo {
	return readConfigInfo(m.loader.RepoPath())
}

// InitGlobalConfig writes the template to the global config path.
func (m *Manager) InitGlobalConfig(force bool) error {
	path := m.loader.GlobalPath()
	if path == "" {
		return fmt.Errorf("cannot determine global config directory")
	}
	return writeTemplate(path, force)
}

// InitRepoConfig writes the template to the repository config path.
func (m *Manager) InitRepoConfig(force bool) error {
	return writeTemplate(m.loader.RepoPath(), force)
}

func readConfigInfo(path string) domain.ConfigInfo {
	info := domain.ConfigInfo{Path: path}
	if path == "" {
		return info
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return info
	}
	info.Content = string(data)
	info.Exists = true
	return info
}

func writeTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrConfigExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(domain.ConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
