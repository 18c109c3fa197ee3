package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays Config with the BOOKREVIEW_* environment variables that
// are set. Unset variables leave the field untouched. Panics on malformed
// values.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
