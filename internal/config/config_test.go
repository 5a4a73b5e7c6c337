package config_test

import (
	"os"
	"testing"

	"github.com/serroba/shorturl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()

	for _, key := range []string{"PUBLIC_HOST", "REDIS_ADDR", "DATABASE_URL", "LOG_FORMAT"} {
		t.Setenv(key, vars[key])

		if vars[key] == "" {
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("reads all settings", func(t *testing.T) {
		setEnv(t, map[string]string{
			"PUBLIC_HOST":  "https://sho.rt/",
			"REDIS_ADDR":   "cache:6379",
			"DATABASE_URL": "postgres://u:p@db:5432/urls",
			"LOG_FORMAT":   "json",
		})

		s, err := config.FromEnv()

		require.NoError(t, err)
		assert.Equal(t, "https://sho.rt/", s.PublicHost)
		assert.Equal(t, "cache:6379", s.RedisAddr)
		assert.Equal(t, "postgres://u:p@db:5432/urls", s.DatabaseURL)
		assert.Equal(t, "json", s.LogFormat)
		assert.NoError(t, s.Validate())
	})

	t.Run("defaults log format", func(t *testing.T) {
		setEnv(t, map[string]string{})

		s, err := config.FromEnv()

		require.NoError(t, err)
		assert.Equal(t, "console", s.LogFormat)
	})
}

func TestSettings_Merge(t *testing.T) {
	s := &config.Settings{
		PublicHost:  "https://env.host/",
		RedisAddr:   "env:6379",
		DatabaseURL: "postgres://env",
		LogFormat:   "console",
	}

	s.Merge(config.Settings{RedisAddr: "flag:6379", LogFormat: "json"})

	assert.Equal(t, "https://env.host/", s.PublicHost)
	assert.Equal(t, "flag:6379", s.RedisAddr)
	assert.Equal(t, "postgres://env", s.DatabaseURL)
	assert.Equal(t, "json", s.LogFormat)
}

func TestSettings_Validate(t *testing.T) {
	t.Run("lists every missing setting", func(t *testing.T) {
		s := &config.Settings{RedisAddr: "cache:6379"}

		err := s.Validate()

		var missing *config.MissingSettingsError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"PUBLIC_HOST", "DATABASE_URL"}, missing.Names)
		assert.Contains(t, err.Error(), "PUBLIC_HOST, DATABASE_URL")
	})

	t.Run("blank values count as missing", func(t *testing.T) {
		s := &config.Settings{PublicHost: "  ", RedisAddr: "cache:6379", DatabaseURL: "postgres://db"}

		err := s.Validate()

		assert.Error(t, err)
	})

	t.Run("consumer only needs redis", func(t *testing.T) {
		s := &config.Settings{RedisAddr: "cache:6379"}

		assert.NoError(t, s.ValidateConsumer())
		assert.Error(t, (&config.Settings{}).ValidateConsumer())
	})
}
