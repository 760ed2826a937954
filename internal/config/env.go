package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// parseEnv overlays Config with values from DRI_* environment variables
// (see the env tags on Config). Unset variables leave the earlier values
// untouched.
func parseEnv(cfg *Config) {
	if err := envconfig.Process(context.Background(), cfg); err != nil {
		panic(err)
	}
}
