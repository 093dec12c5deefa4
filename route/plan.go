// Package route models the waypoint plan a vessel follows: an ordered list
// of great-circle legs, each with a tacking corridor width and an arrival
// proximity around its end waypoint.
package route

import (
	"errors"
	"fmt"

	"github.com/a-bouts/sim-server/latlon"
)

var ErrEmptyPlan = errors.New("route: empty plan")
var ErrDegenerateLeg = errors.New("route: leg endpoints coincide")

var geo latlon.LatLonSpherical

type Leg struct {
	P1 latlon.LatLon `json:"p1"`
	P2 latlon.LatLon `json:"p2"`
	// TackingWidth is the total corridor width in meters, centered on the
	// p1-p2 great-circle line.
	TackingWidth float64 `json:"tackingWidth"`
	// MinProximity is the arrival radius around p2 in meters.
	MinProximity float64 `json:"minProximity"`
}

func (l Leg) Length() float64 {
	return geo.DistanceTo(l.P1, l.P2)
}

type Plan []Leg

func (p Plan) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPlan
	}
	for i, l := range p {
		if l.P1 == l.P2 {
			return fmt.Errorf("leg %d: %w", i+1, ErrDegenerateLeg)
		}
	}
	return nil
}

// Start is the departure point, the first leg's p1.
func (p Plan) Start() latlon.LatLon {
	return p[0].P1
}

// Finish is the last waypoint of the voyage.
func (p Plan) Finish() latlon.LatLon {
	return p[len(p)-1].P2
}

// Leg returns the leg with the given 1-based index.
func (p Plan) Leg(leg int) Leg {
	return p[leg-1]
}

// Arrived reports whether a vessel at loc has reached the end waypoint of
// the given leg, within the leg's arrival proximity.
func (p Plan) Arrived(loc latlon.LatLon, leg int) bool {
	l := p.Leg(leg)
	return loc == l.P2 || geo.DistanceTo(loc, l.P2) <= l.MinProximity
}

// Length sums the great-circle lengths of every leg, in meters.
func (p Plan) Length() float64 {
	total := 0.0
	for _, l := range p {
		total += l.Length()
	}
	return total
}
