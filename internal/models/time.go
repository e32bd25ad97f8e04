// internal/models/time.go
package models

import (
	"fmt"
	"time"
)

// The server emits ISO-8601 timestamps, with or without a timezone
// offset and fractional seconds. Timestamps stay strings in the models
// so they round-trip byte-for-byte; parse on demand.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}
