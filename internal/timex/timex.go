// Package timex holds time helpers shared across the portal client:
// a JSON-friendly Duration and the portal's canonical clock.
package timex

import (
	"encoding/json"
	"fmt"
	"time"
)

// Brasilia is the portal's canonical time zone. Every timestamp written to
// the table store (code expiries, session expiries, last access) is taken
// in this zone, matching the rows produced by the browser build.
var Brasilia = time.FixedZone("America/Sao_Paulo", -3*60*60)

// Now returns the current time in the portal's canonical zone.
func Now() time.Time {
	return time.Now().In(Brasilia)
}

// Duration wraps time.Duration so JSON config files can specify intervals
// either as strings like "3s" or as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration: %v", v)
	}
	return nil
}
