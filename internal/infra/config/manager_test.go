package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gh-issues/internal/domain"
)

func TestManager_ConfigInfo(t *testing.T) {
	repoDir := t.TempDir()
	globalDir := t.TempDir()
	m := NewManager(NewLoaderWithGlobalDir(repoDir, globalDir))

	repo := m.GetRepoConfigInfo()
	assert.Equal(t, filepath.Join(repoDir, domain.RepoConfigFileName), repo.Path)
	assert.False(t, repo.Exists)
	assert.Empty(t, repo.Content)

	require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte("[log]\nlevel = \"info\"\n"), 0o644))
	global := m.GetGlobalConfigInfo()
	assert.True(t, global.Exists)
	assert.Equal(t, "[log]\nlevel = \"info\"\n", global.Content)
}

func TestManager_InitRepoConfig(t *testing.T) {
	repoDir := t.TempDir()
	loader := NewLoaderWithGlobalDir(repoDir, t.TempDir())
	m := NewManager(loader)

	require.NoError(t, m.InitRepoConfig(false))

	data, err := os.ReadFile(loader.RepoPath())
	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), string(data))

	// The written template loads without warnings
	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)

	err = m.InitRepoConfig(false)
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	assert.NoError(t, m.InitRepoConfig(true))
}

func TestManager_InitGlobalConfig_CreatesDirectory(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "nested", "gh-issues")
	m := NewManager(NewLoaderWithGlobalDir(t.TempDir(), globalDir))

	require.NoError(t, m.InitGlobalConfig(false))

	_, err := os.Stat(filepath.Join(globalDir, domain.ConfigFileName))
	assert.NoError(t, err)
}

func TestManager_InitGlobalConfig_UnknownDir(t *testing.T) {
	m := NewManager(NewLoaderWithGlobalDir(t.TempDir(), ""))

	assert.Error(t, m.InitGlobalConfig(false))
}
