package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/store/sqlite"
)

func setupInstanceService(t *testing.T) *InstanceService {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "gamedex.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.Server.Name = "Test Gamedex"

	return NewInstanceService(store, setupCatalogService(t), cfg, testLogger())
}

func TestInstanceService_Get(t *testing.T) {
	s := setupInstanceService(t)

	instance, err := s.Get(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, instance.ID)
	assert.Equal(t, "Test Gamedex", instance.Name)
	assert.Equal(t, "development", instance.Environment)
	assert.Equal(t, 4, instance.GameCount)
	assert.False(t, instance.StartedAt.IsZero())
}

func TestInstanceService_IDIsStable(t *testing.T) {
	s := setupInstanceService(t)

	first, err := s.Get(context.Background())
	require.NoError(t, err)
	second, err := s.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}
