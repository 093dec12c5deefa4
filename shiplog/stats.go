package shiplog

import (
	"math"
	"time"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/latlon"
)

var geo latlon.LatLonSpherical

// Stats aggregates a voyage log: speed over ground between consecutive
// entries, cargo per entry, total distance and travel time.
type Stats struct {
	SpeedMean float64       `json:"speedMean"`
	SpeedStd  float64       `json:"speedStd"`
	CargoMean float64       `json:"cargoMean"`
	CargoStd  float64       `json:"cargoStd"`
	Distance  float64       `json:"distance"`
	Duration  time.Duration `json:"duration"`
}

// Evaluate computes voyage statistics. When distance is zero it is summed
// leg by leg from consecutive log positions.
func Evaluate(log boat.ShipLog, distance float64) Stats {
	var s Stats
	if len(log) == 0 {
		return s
	}

	var speeds []float64
	measured := 0.0
	for i := 1; i < len(log); i++ {
		d := geo.DistanceTo(log[i-1].CoordinatesCurrent, log[i].CoordinatesCurrent)
		measured += d

		dt := log[i].Timestamp.Sub(log[i-1].Timestamp).Seconds()
		if dt > 0 {
			speeds = append(speeds, d/dt)
		}
	}

	cargos := make([]float64, len(log))
	for i, e := range log {
		cargos[i] = e.CargoOnBoard
	}

	s.SpeedMean, s.SpeedStd = meanStd(speeds)
	s.CargoMean, s.CargoStd = meanStd(cargos)
	s.Duration = log[len(log)-1].Timestamp.Sub(log[0].Timestamp)
	s.Distance = distance
	if s.Distance == 0 {
		s.Distance = measured
	}
	return s
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}
