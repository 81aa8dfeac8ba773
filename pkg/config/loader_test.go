package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dobby152/askelio-sub003/pkg/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env tags with defaults", func(t *testing.T) {
		type apiConfig struct {
			BaseURL string        `env:"TEST_CFG_BASE_URL" envDefault:"https://api.askelio.test"`
			Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"30s"`
		}

		var cfg apiConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://api.askelio.test", cfg.BaseURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
	})

	t.Run("reads environment values", func(t *testing.T) {
		type storeConfig struct {
			Namespace string `env:"TEST_CFG_NAMESPACE" envDefault:"default"`
		}

		t.Setenv("TEST_CFG_NAMESPACE", "tenant-a")

		var cfg storeConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "tenant-a", cfg.Namespace)
	})

	t.Run("caches per type", func(t *testing.T) {
		type cachedConfig struct {
			Value string `env:"TEST_CFG_CACHED" envDefault:"first"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))

		// Environment changes after the first Load are not observed.
		t.Setenv("TEST_CFG_CACHED", "second")

		var again cachedConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, first.Value, again.Value)
	})

	t.Run("nil pointer", func(t *testing.T) {
		err := config.Load[struct{}](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on nil pointer", func(t *testing.T) {
		assert.Panics(t, func() {
			config.MustLoad[struct{}](nil)
		})
	})
}
