package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v6"
)

// Settings holds the external settings the service needs to run.
type Settings struct {
	// PublicHost is prepended verbatim to a hash to build the short URL,
	// e.g. "https://sho.rt/".
	PublicHost  string `env:"PUBLIC_HOST"`
	RedisAddr   string `env:"REDIS_ADDR"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"console"`
}

// MissingSettingsError lists required settings that were not provided.
type MissingSettingsError struct {
	Names []string
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("missing required settings: %s", strings.Join(e.Names, ", "))
}

// FromEnv reads settings from the environment.
func FromEnv() (*Settings, error) {
	var s Settings

	if err := env.Parse(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Merge overrides s with the non-empty fields of override.
func (s *Settings) Merge(override Settings) {
	if override.PublicHost != "" {
		s.PublicHost = override.PublicHost
	}

	if override.RedisAddr != "" {
		s.RedisAddr = override.RedisAddr
	}

	if override.DatabaseURL != "" {
		s.DatabaseURL = override.DatabaseURL
	}

	if override.LogFormat != "" {
		s.LogFormat = override.LogFormat
	}
}

// Validate reports every setting the server requires that is empty.
func (s *Settings) Validate() error {
	return require(
		setting{"PUBLIC_HOST", s.PublicHost},
		setting{"REDIS_ADDR", s.RedisAddr},
		setting{"DATABASE_URL", s.DatabaseURL},
	)
}

// ValidateConsumer reports every setting the event consumer requires that is empty.
func (s *Settings) ValidateConsumer() error {
	return require(setting{"REDIS_ADDR", s.RedisAddr})
}

type setting struct {
	name  string
	value string
}

func require(settings ...setting) error {
	var missing []string

	for _, st := range settings {
		if strings.TrimSpace(st.value) == "" {
			missing = append(missing, st.name)
		}
	}

	if len(missing) > 0 {
		return &MissingSettingsError{Names: missing}
	}

	return nil
}
