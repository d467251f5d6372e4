package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays cfg with the variables named in its env tags. Unset
// variables leave the current value alone. environ replaces the process
// environment when non-nil.
func parseEnv(cfg *Config, environ map[string]string) {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		panic(err)
	}
}
