package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the process environment following the env and
// envPrefix tags, e.g. APP_PEPPER or STORAGE_DB_DATABASE_URI. Durations use
// time.ParseDuration syntax.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}

	return nil
}
