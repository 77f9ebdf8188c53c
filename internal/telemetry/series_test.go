package telemetry

import (
	"errors"
	"strings"
	"testing"
)

func fullSeries(n int) Series {
	col := func() []float64 { return make([]float64, n) }
	return Series{
		Driver:   "VER",
		Distance: col(),
		Speed:    col(),
		Throttle: col(),
		Brake:    col(),
		RPM:      col(),
		Gear:     col(),
		DRS:      col(),
	}
}

func TestSeriesValidate(t *testing.T) {
	s := fullSeries(3)
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate on complete series: %v", err)
	}

	short := fullSeries(3)
	short.Throttle = make([]float64, 2)
	err := short.Validate()
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("uneven throttle column: error = %v, want ErrLengthMismatch", err)
	}
	if err != nil && !strings.Contains(err.Error(), "throttle") {
		t.Errorf("error %q does not name the offending column", err)
	}
}

func TestSeriesValidateOptionalColumnsMayBeNil(t *testing.T) {
	s := Series{
		Driver:   "NOR",
		Distance: []float64{0, 1},
		Speed:    []float64{0, 1},
		Brake:    []float64{0, 1},
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate without optional columns: %v", err)
	}
}

func TestSeriesRequireColumns(t *testing.T) {
	s := fullSeries(2)
	if err := s.RequireColumns("throttle", "rpm", "gear", "drs"); err != nil {
		t.Fatalf("RequireColumns on complete series: %v", err)
	}

	s.Gear = nil
	err := s.RequireColumns("throttle", "rpm", "gear", "drs")
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("missing gear: error = %v, want ErrMissingColumn", err)
	}

	if err := fullSeries(1).RequireColumns("downforce"); !errors.Is(err, ErrInput) {
		t.Errorf("unknown column name: error = %v, want ErrInput", err)
	}
}
