package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/gh-issues/internal/domain"
	"github.com/runoshun/gh-issues/internal/testutil"
	"github.com/runoshun/gh-issues/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Execute(t *testing.T) {
	t.Run("creates repo config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.RepoConfigInfo = domain.ConfigInfo{Path: "/test/.gh-issues.toml"}

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, "/test/.gh-issues.toml", out.Path)
		assert.True(t, manager.InitRepoCalled)
		assert.False(t, manager.InitGlobalCalled)
		assert.False(t, manager.Forced)
	})

	t.Run("creates global config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.GlobalConfigInfo = domain.ConfigInfo{Path: "/home/test/.config/gh-issues/config.toml"}

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{Global: true, Force: true})

		require.NoError(t, err)
		assert.Equal(t, "/home/test/.config/gh-issues/config.toml", out.Path)
		assert.True(t, manager.InitGlobalCalled)
		assert.False(t, manager.InitRepoCalled)
		assert.True(t, manager.Forced)
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.InitErr = domain.ErrConfigExists

		uc := usecase.NewInitConfig(manager)
		out, err := uc.Execute(context.Background(), usecase.InitConfigInput{})

		assert.Nil(t, out)
		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})
}
