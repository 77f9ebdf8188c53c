package telemetry

// Default detection thresholds. A turn entry is a sample braking harder
// than the brake threshold while already slower than the speed threshold.
const (
	DefaultSpeedThreshold = 100.0 // km/h
	DefaultBrakeThreshold = 50.0  // brake percent
)

// Turn is one detected braking-zone entry: the track distance at which
// it was found and its 1-based ordinal within the lap. Numbering is
// per-series; two drivers' "Turn 1" can sit at different distances.
type Turn struct {
	Distance float64 // meters from lap start
	Number   int     // 1-based, in scan order
}

// DetectTurns scans the series in sample order and returns a Turn for
// every sample whose brake value strictly exceeds brakeThreshold while
// its speed is strictly below speedThreshold. Consecutive hits at the
// exact same distance collapse into one turn; hits at distinct distances
// do not, so noisy telemetry can over-report closely spaced turns.
//
// Thresholds are taken as given: non-positive values run the same
// comparisons. NaN speed or brake samples fail the strict comparisons
// and are skipped rather than treated as an error. An empty series
// yields an empty result.
func DetectTurns(s Series, speedThreshold, brakeThreshold float64) ([]Turn, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	turns := make([]Turn, 0)
	seen := make(map[float64]struct{})
	for i := range s.Distance {
		if !(s.Brake[i] > brakeThreshold) {
			continue
		}
		if !(s.Speed[i] < speedThreshold) {
			continue
		}
		d := s.Distance[i]
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		turns = append(turns, Turn{Distance: d, Number: len(turns) + 1})
	}
	return turns, nil
}

// DetectTurnsDefault runs DetectTurns with the default thresholds.
func DetectTurnsDefault(s Series) ([]Turn, error) {
	return DetectTurns(s, DefaultSpeedThreshold, DefaultBrakeThreshold)
}
