package wind

import (
	"time"

	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/physics"
)

// Provider answers wind and ocean current queries at a position and time.
// Vectors point toward the direction of flow, angle clockwise from north.
type Provider interface {
	WindAt(p latlon.LatLon, t time.Time) (physics.Vector, error)
	// CurrentAt reports ok=false when no current data covers the query,
	// callers treat that as a zero vector.
	CurrentAt(p latlon.LatLon, t time.Time) (physics.Vector, bool, error)
}

// Uniform is a fixed wind and current everywhere, for tests and dry runs.
type Uniform struct {
	Wind       physics.Vector
	Current    physics.Vector
	HasCurrent bool
}

func (u Uniform) WindAt(latlon.LatLon, time.Time) (physics.Vector, error) {
	return u.Wind, nil
}

func (u Uniform) CurrentAt(latlon.LatLon, time.Time) (physics.Vector, bool, error) {
	return u.Current, u.HasCurrent, nil
}
