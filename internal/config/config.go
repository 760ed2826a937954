// Package config handles configuration for the portal client, including
// defaults, JSON overlay, environment overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the DRI portal client.
//
// Fields:
//   - GatewayURL: base URL of the hosted table-store REST gateway.
//   - GatewayKey: HS256 role-claim key (JWT) presented to the gateway.
//   - HabboAPIBaseURL: base URL of the public avatar-profile API.
//   - DatabaseDSN: optional PostgreSQL DSN; when set, repositories talk to
//     the database directly instead of the REST gateway (self-hosted mode).
//   - LocalDBPath: SQLite file backing the durable local tier.
//   - ShortSessionTTL: session lifetime when "stay signed in" is off.
//     The browser builds disagreed (1 day vs 1 hour); it is a parameter.
//   - StaySessionTTL: session lifetime when "stay signed in" is on.
//   - CodeTTL: verification-code lifetime.
type Config struct {
	GatewayURL      string        `env:"DRI_GATEWAY_URL,overwrite"`
	GatewayKey      string        `env:"DRI_GATEWAY_KEY,overwrite"`
	HabboAPIBaseURL string        `env:"DRI_HABBO_API_URL,overwrite"`
	DatabaseDSN     string        `env:"DRI_DATABASE_DSN,overwrite"`
	LocalDBPath     string        `env:"DRI_LOCAL_DB,overwrite"`
	ShortSessionTTL time.Duration `env:"DRI_SHORT_SESSION_TTL,overwrite"`
	StaySessionTTL  time.Duration `env:"DRI_STAY_SESSION_TTL,overwrite"`
	CodeTTL         time.Duration `env:"DRI_CODE_TTL,overwrite"`
}

// LoadDefaults populates c with sensible defaults.
// NOTE: GatewayKey has no default and must be provided.
func (c *Config) LoadDefaults() {
	c.GatewayURL = "http://127.0.0.1:54321/rest/v1"
	c.GatewayKey = ""
	c.HabboAPIBaseURL = "https://www.habbo.com.br"
	c.DatabaseDSN = ""
	c.LocalDBPath = "dri.db"
	c.ShortSessionTTL = 1 * time.Hour
	c.StaySessionTTL = 5 * 24 * time.Hour
	c.CodeTTL = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
