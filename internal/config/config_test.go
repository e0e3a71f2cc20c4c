package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.geofusion.com.br", cfg.GeoFusion.BaseURL)
	assert.InDelta(t, 20.0, cfg.GeoFusion.RateLimit, 0.001)
	assert.Empty(t, cfg.GeoFusion.Token)
	assert.Equal(t, "TIME", cfg.Enrich.DispatchType)
	assert.Equal(t, "WALK", cfg.Enrich.Locomotion)
	assert.Equal(t, "OUT", cfg.Enrich.Direction)
	assert.InDelta(t, 5.0, cfg.Enrich.Value, 0.001)
	assert.InDelta(t, 100.0, cfg.Enrich.Radius, 0.001)
	assert.Equal(t, []string{
		"pacote_de_telefone_tv_e_internet",
		"telefone_celular",
		"telefone_fixo",
	}, cfg.Enrich.Categories)
	assert.Equal(t, 10, cfg.Batch.Workers)
	assert.Equal(t, "data/raw/cep.txt", cfg.Batch.Input)
	assert.Equal(t, "enriched.csv", cfg.Batch.Output)
	assert.Equal(t, "csv", cfg.Batch.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
geofusion:
  token: secret-token
  rate_limit: 5
enrich:
  dispatch_type: RADIUS
  value: 300
batch:
  workers: 4
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret-token", cfg.GeoFusion.Token)
	assert.InDelta(t, 5.0, cfg.GeoFusion.RateLimit, 0.001)
	assert.Equal(t, "RADIUS", cfg.Enrich.DispatchType)
	assert.InDelta(t, 300.0, cfg.Enrich.Value, 0.001)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "https://api.geofusion.com.br", cfg.GeoFusion.BaseURL)
	assert.Equal(t, "WALK", cfg.Enrich.Locomotion)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
geofusion:
  token: file-token
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CEP_GEOFUSION_TOKEN", "env-token")
	t.Setenv("CEP_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "env-token", cfg.GeoFusion.Token)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	t.Setenv("CEP_BATCH_WORKERS", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Batch.Workers)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
