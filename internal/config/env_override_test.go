package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("data dir and default game", func(t *testing.T) {
		t.Setenv("ADDONS_DATA_DIR", "/var/addons")
		t.Setenv("ADDONS_DEFAULT_GAME", "retail")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/var/addons", cfg.DataDir)
		assert.Equal(t, "retail", cfg.DefaultGame)
	})

	t.Run("fetch timeout", func(t *testing.T) {
		t.Setenv("ADDONS_FETCH_TIMEOUT", "2m")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "2m", cfg.Fetch.Timeout)
		assert.Equal(t, 120.0, cfg.GetFetchTimeout().Seconds())
	})

	t.Run("debug and dark mode booleans", func(t *testing.T) {
		t.Setenv("ADDONS_DEBUG", "true")
		t.Setenv("ADDONS_DARK_MODE", "1")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
		assert.True(t, cfg.UI.DarkMode)
	})

	t.Run("explicit false wins over file value", func(t *testing.T) {
		t.Setenv("ADDONS_DEBUG", "off")

		cfg := &Config{Logging: LoggingConfig{DebugMode: true}}
		cfg.applyEnvOverrides()

		assert.False(t, cfg.Logging.DebugMode)
	})

	t.Run("unrecognized value leaves setting alone", func(t *testing.T) {
		t.Setenv("ADDONS_DARK_MODE", "maybe")

		cfg := &Config{UI: UIConfig{DarkMode: true}}
		cfg.applyEnvOverrides()

		assert.True(t, cfg.UI.DarkMode)
	})
}
