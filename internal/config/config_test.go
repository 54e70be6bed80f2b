package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.InDelta(t, 0.017, cfg.Enrich.CostPerRequest, 1e-9)
	assert.InDelta(t, 190.0, cfg.Enrich.MaxTotalCost, 1e-9)
	assert.InDelta(t, 50.0, cfg.Enrich.RequestsPerSecond, 1e-9)
	assert.Equal(t, 100, cfg.Enrich.CheckpointEvery)
	assert.InDelta(t, 1.0, cfg.Cluster.RadiusKilometers, 1e-9)
	assert.Equal(t, 5, cfg.Cluster.MinPoints)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Enrich, cfg.Enrich)
}

func TestLoadTOMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "placewalk.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/tmp/out"

[enrich]
max_total_cost = 2.5
requests_per_second = 5

[cluster]
radius_kilometers = 0.5
min_points = 3
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.DataDir)
	assert.InDelta(t, 2.5, cfg.Enrich.MaxTotalCost, 1e-9)
	assert.InDelta(t, 5.0, cfg.Enrich.RequestsPerSecond, 1e-9)
	// Untouched keys keep defaults
	assert.InDelta(t, 0.017, cfg.Enrich.CostPerRequest, 1e-9)
	assert.Equal(t, 3, cfg.Cluster.MinPoints)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PLACES_API_KEY", "env-key")
	t.Setenv("PLACEWALK_DATA_DIR", "/srv/placewalk")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Enrich.APIKey)
	assert.Equal(t, "/srv/placewalk", cfg.DataDir)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Enrich.CostPerRequest = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Cluster.MinPoints = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Cluster.RadiusKilometers = -1
	assert.Error(t, cfg.Validate())
}
