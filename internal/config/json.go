package config

import (
	"encoding/json"
	"os"

	"github.com/youiz/dri-portal/internal/flagx"
	"github.com/youiz/dri-portal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "1h"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config.
type JsonConfig struct {
	GatewayURL      *string         `json:"gateway_url"`
	GatewayKey      *string         `json:"gateway_key"`
	HabboAPIBaseURL *string         `json:"habbo_api_url"`
	DatabaseDSN     *string         `json:"database_dsn"`
	LocalDBPath     *string         `json:"local_db"`
	ShortSessionTTL *timex.Duration `json:"short_session_ttl"`
	StaySessionTTL  *timex.Duration `json:"stay_session_ttl"`
	CodeTTL         *timex.Duration `json:"code_ttl"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags via flagx.JsonConfigFlags; when no
// path is given, nothing is loaded. Absent fields keep their earlier
// values. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.GatewayURL != nil {
		cfg.GatewayURL = *jc.GatewayURL
	}
	if jc.GatewayKey != nil {
		cfg.GatewayKey = *jc.GatewayKey
	}
	if jc.HabboAPIBaseURL != nil {
		cfg.HabboAPIBaseURL = *jc.HabboAPIBaseURL
	}
	if jc.DatabaseDSN != nil {
		cfg.DatabaseDSN = *jc.DatabaseDSN
	}
	if jc.LocalDBPath != nil {
		cfg.LocalDBPath = *jc.LocalDBPath
	}
	if jc.ShortSessionTTL != nil {
		cfg.ShortSessionTTL = jc.ShortSessionTTL.Duration
	}
	if jc.StaySessionTTL != nil {
		cfg.StaySessionTTL = jc.StaySessionTTL.Duration
	}
	if jc.CodeTTL != nil {
		cfg.CodeTTL = jc.CodeTTL.Duration
	}
}
