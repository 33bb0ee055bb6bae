// Package timezone resolves the application timezone that defines the
// calendar day used for order numbering.
package timezone

import (
	"fmt"
	"time"
)

const DefaultTimezone = "UTC"

// Load resolves tz. An empty name means DefaultTimezone.
func Load(tz string) (*time.Location, error) {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Location is Load with unknown names falling back to DefaultTimezone.
func Location(tz string) *time.Location {
	if loc, err := Load(tz); err == nil {
		return loc
	}
	return time.UTC
}
