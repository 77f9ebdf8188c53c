// Package telemetry models one driver's single-lap telemetry and the
// braking-zone turn detection that runs over it.
//
// A Series holds parallel per-sample columns sorted by increasing
// distance. Series are produced by a data source (see internal/f1) and
// treated as immutable once handed to this package.
package telemetry

import (
	"fmt"
	"time"
)

// Series is one driver's telemetry for a single lap. All non-nil columns
// share an index with Distance; Distance is non-decreasing.
type Series struct {
	Driver string // short driver code, e.g. "LEC"; used for labels only

	Distance []float64 // meters from lap start
	Speed    []float64 // km/h
	Throttle []float64 // percent, 0-100
	Brake    []float64 // percent, 0-100
	RPM      []float64
	Gear     []float64 // small positive integers
	DRS      []float64 // 0/1 flag
}

// Len returns the number of samples in the series.
func (s Series) Len() int { return len(s.Distance) }

// Validate checks the structural invariants needed for turn detection:
// the distance, speed and brake columns must be present, and every
// column that is present must have the same length as distance.
// Optional columns (throttle, rpm, gear, drs) may be nil; RequireColumns
// covers callers that need them too.
func (s Series) Validate() error {
	if s.Distance == nil {
		return fmt.Errorf("%w: series %q: distance", ErrMissingColumn, s.Driver)
	}
	if s.Speed == nil {
		return fmt.Errorf("%w: series %q: speed", ErrMissingColumn, s.Driver)
	}
	if s.Brake == nil {
		return fmt.Errorf("%w: series %q: brake", ErrMissingColumn, s.Driver)
	}

	n := len(s.Distance)
	for _, col := range []struct {
		name   string
		values []float64
	}{
		{"speed", s.Speed},
		{"throttle", s.Throttle},
		{"brake", s.Brake},
		{"rpm", s.RPM},
		{"gear", s.Gear},
		{"drs", s.DRS},
	} {
		if col.values == nil {
			continue
		}
		if len(col.values) != n {
			return fmt.Errorf("%w: series %q: column %s has %d samples, distance has %d",
				ErrLengthMismatch, s.Driver, col.name, len(col.values), n)
		}
	}
	return nil
}

// RequireColumns validates the series and additionally requires every
// named optional column to be present. Column names match the sample
// fields: throttle, rpm, gear, drs.
func (s Series) RequireColumns(names ...string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, name := range names {
		var values []float64
		switch name {
		case "throttle":
			values = s.Throttle
		case "rpm":
			values = s.RPM
		case "gear":
			values = s.Gear
		case "drs":
			values = s.DRS
		case "distance", "speed", "brake":
			continue // covered by Validate
		default:
			return fmt.Errorf("%w: series %q: unknown column %s", ErrInput, s.Driver, name)
		}
		if values == nil {
			return fmt.Errorf("%w: series %q: %s", ErrMissingColumn, s.Driver, name)
		}
	}
	return nil
}

// WeatherSample is one session-level weather observation.
type WeatherSample struct {
	Time      time.Time
	AirTemp   float64 // degrees C
	TrackTemp float64 // degrees C
	Humidity  float64 // percent
}

// TyreStint is one lap's tyre record for one driver: which compound was
// fitted and how many laps old it was.
type TyreStint struct {
	Driver   string
	Lap      int
	Compound string
	TyreLife float64 // laps on this set
}
