package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/crashx/feed"
	"github.com/lixenwraith/crashx/parameter"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.Enabled)
	assert.Equal(t, zerolog.InfoLevel, cfg.LogLevel())
	assert.Equal(t, parameter.TickInterval, cfg.Engine.TickInterval)
	assert.Equal(t, parameter.StatusBarAllowance, cfg.Engine.StatusBar)
	assert.Equal(t, parameter.CellWidth, cfg.Render.CellWidth)
	assert.Equal(t, parameter.CellHeight, cfg.Render.CellHeight)
	assert.Empty(t, cfg.Render.RecordDir)
	assert.Equal(t, parameter.AssetDir, cfg.Assets.Dir)
	assert.True(t, cfg.Assets.Fallback)
	assert.Equal(t, feed.KindDemo, cfg.FeedConfig().Kind)
	assert.Equal(t, parameter.FeedRedisChannel, cfg.Feed.Redis.Channel)
	assert.False(t, cfg.Debug.Overlay)
}

func TestLoad_WithConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "crashx.yaml", `
log:
  enabled: true
  level: debug
engine:
  tick_interval: 20ms
  seed: 99
feed:
  kind: WebSocket
  websocket:
    url: ws://localhost:9000/round
debug:
  overlay: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Log.Enabled)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel())

	ec := cfg.EngineConfig()
	assert.Equal(t, 20*time.Millisecond, ec.TickInterval)
	assert.Equal(t, uint64(99), ec.Seed)
	assert.True(t, ec.Overlay)

	fc := cfg.FeedConfig()
	assert.Equal(t, feed.KindWebSocket, fc.Kind)
	assert.Equal(t, "ws://localhost:9000/round", fc.WebSocketURL)
	assert.Equal(t, uint64(99), fc.Seed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "crashx.json", `{"assets": {"dir": "from-file", "fallback": true}}`)
	t.Setenv("CRASHX_ASSETS_DIR", "from-env")
	t.Setenv("CRASHX_ASSETS_FALLBACK", "false")
	t.Setenv("CRASHX_RENDER_RECORD_EVERY", "3")

	cfg, err := Load(path)
	require.NoError(t, err)

	ac := cfg.AssetConfig()
	assert.Equal(t, "from-env", ac.Dir)
	assert.False(t, ac.Fallback)
	assert.Equal(t, parameter.AssetRocketFile, ac.Rocket)
	assert.Equal(t, 3, cfg.Render.RecordEvery)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "CRASHX_DEBUG_OVERLAY=true\nCRASHX_FEED_KIND=none\n")
	t.Cleanup(func() {
		os.Unsetenv("CRASHX_DEBUG_OVERLAY")
		os.Unsetenv("CRASHX_FEED_KIND")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Debug.Overlay)
	assert.Equal(t, feed.KindNone, cfg.FeedConfig().Kind)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("/nonexistent/crashx.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CRASHX_ENGINE_TICK_INTERVAL", "0s")
	t.Setenv("CRASHX_LOG_LEVEL", "loud")
	t.Setenv("CRASHX_FEED_KIND", "redis")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.tick_interval")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "redis feed")
}

func TestValidate_Render(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Render.CellHeight = 1
	cfg.Render.RecordEvery = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render cell")
	assert.Contains(t, err.Error(), "record_every")
}
