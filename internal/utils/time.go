package utils

import (
	"fmt"
	"time"
)

// LoadLocation resolves a timezone name from the config. Empty means the
// machine's local zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
	}
	return loc, nil
}

// FormatIn returns t formatted in the given location.
func FormatIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC1123)
}
