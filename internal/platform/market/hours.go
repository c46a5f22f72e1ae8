// Package market reports whether the US equity regular session is open.
package market

import (
	"fmt"
	"time"
	_ "time/tzdata" // embedded zone database
)

// DefaultLocation is the exchange time zone.
const DefaultLocation = "America/New_York"

// Hours is the regular trading session: weekdays from Open to Close (minutes after midnight).
// Exchange holidays are not modeled.
type Hours struct {
	loc   *time.Location
	open  int
	close int
}

// NewHours returns the NYSE regular session (09:30-16:00 inclusive) in the named location.
func NewHours(location string) (*Hours, error) {
	if location == "" {
		location = DefaultLocation
	}
	loc, err := time.LoadLocation(location)
	if err != nil {
		return nil, fmt.Errorf("load market location %q: %w", location, err)
	}
	return &Hours{loc: loc, open: 9*60 + 30, close: 16 * 60}, nil
}

// MustNewHours is NewHours for the default location. It panics if the zone is unknown.
func MustNewHours() *Hours {
	h, err := NewHours(DefaultLocation)
	if err != nil {
		panic(err)
	}
	return h
}

// IsOpen reports whether t falls inside the session. Minute granularity; the 16:00
// minute still counts as open.
func (h *Hours) IsOpen(t time.Time) bool {
	local := t.In(h.loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= h.open && minutes <= h.close
}

// Location returns the exchange time zone.
func (h *Hours) Location() *time.Location { return h.loc }
