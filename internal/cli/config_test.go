package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/gh-issues/internal/app"
	"github.com/runoshun/gh-issues/internal/domain"
)

// newConfigTestContainer creates an app.Container with real config
// infrastructure rooted in temporary directories.
func newConfigTestContainer(t *testing.T) (*app.Container, string, string) {
	t.Helper()

	workDir := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	return app.New(workDir), workDir, configHome
}

func runConfig(t *testing.T, c *app.Container, args ...string) (string, error) {
	t.Helper()
	cmd := newConfigCommand(c)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// =============================================================================
// Config Command Tests
// =============================================================================

func TestConfigCommand_NoSubcommand_ShowsHelp(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfig(t, c)

	require.NoError(t, err)
	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "show")
	assert.Contains(t, output, "template")
	assert.Contains(t, output, "init")
}

// =============================================================================
// Config Show Subcommand Tests
// =============================================================================

func TestConfigShow_NoFiles(t *testing.T) {
	c, workDir, configHome := newConfigTestContainer(t)

	output, err := runConfig(t, c, "show")

	require.NoError(t, err)
	assert.Contains(t, output, "[Loaded from]")
	assert.Contains(t, output, filepath.Join(configHome, "gh-issues", "config.toml")+" (not found)")
	assert.Contains(t, output, filepath.Join(workDir, ".gh-issues.toml")+" (not found)")
	assert.Contains(t, output, "[Effective Config]")
	assert.Contains(t, output, "[create]")
	assert.Contains(t, output, "backend = 'gh'")
}

func TestConfigShow_MergesAndMasksToken(t *testing.T) {
	c, workDir, _ := newConfigTestContainer(t)
	content := "[create]\nbackend = \"api\"\n\n[github]\ntoken = \"ghp_secret\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".gh-issues.toml"), []byte(content), 0o644))

	output, err := runConfig(t, c, "show")

	require.NoError(t, err)
	assert.Contains(t, output, filepath.Join(workDir, ".gh-issues.toml")+"\n")
	assert.Contains(t, output, "backend = 'api'")
	assert.NotContains(t, output, "ghp_secret")
	assert.Contains(t, output, "********")
}

func TestConfigShow_InvalidTOML(t *testing.T) {
	c, workDir, _ := newConfigTestContainer(t)
	require.NoError(t, os.WriteFile(filepath.Join(workDir, ".gh-issues.toml"), []byte("[create\n"), 0o644))

	_, err := runConfig(t, c, "show")

	assert.Error(t, err)
}

// =============================================================================
// Config Template / Init Subcommand Tests
// =============================================================================

func TestConfigTemplate_PrintsTemplate(t *testing.T) {
	c, _, _ := newConfigTestContainer(t)

	output, err := runConfig(t, c, "template")

	require.NoError(t, err)
	assert.Equal(t, domain.ConfigTemplate(), output)
}

func TestConfigInit_CreatesRepoConfig(t *testing.T) {
	c, workDir, _ := newConfigTestContainer(t)
	path := filepath.Join(workDir, ".gh-issues.toml")

	output, err := runConfig(t, c, "init")

	require.NoError(t, err)
	assert.Contains(t, output, "Created config file: "+path)
	assert.FileExists(t, path)

	_, err = runConfig(t, c, "init")
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	_, err = runConfig(t, c, "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInit_Global(t *testing.T) {
	c, _, configHome := newConfigTestContainer(t)

	_, err := runConfig(t, c, "init", "--global")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(configHome, "gh-issues", "config.toml"))
}
