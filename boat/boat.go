// Package boat holds the mutable vessel state threaded through a
// simulation, the tacking state machine, and the ship log it produces.
package boat

import (
	"fmt"

	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/physics"
	"github.com/a-bouts/sim-server/route"
)

// Side of the vessel the wind is kept on while working upwind.
type Side int

const (
	Starboard Side = iota
	Port
)

// Opposite is the tack transition: Port <-> Starboard.
func (s Side) Opposite() Side {
	if s == Port {
		return Starboard
	}
	return Port
}

func (s Side) String() string {
	if s == Port {
		return "port"
	}
	return "starboard"
}

type Boat struct {
	Name string  `json:"name"`
	IMO  uint32  `json:"imo,omitempty"`
	Mass float64 `json:"mass,omitempty"`

	// MinAngleOfAttack is the closest angle to the wind, in degrees, the
	// boat can hold.
	MinAngleOfAttack float64 `json:"minAngleOfAttack"`

	Location   latlon.LatLon `json:"location"`
	Heading    float64       `json:"heading"`
	Plan       route.Plan    `json:"plan,omitempty"`
	CurrentLeg int           `json:"currentLeg"`

	// WindPreferredSide defaults to starboard, the right of way tack.
	WindPreferredSide Side `json:"windPreferredSide"`

	Velocity     physics.Vector `json:"velocity"`
	VelocityMean float64        `json:"velocityMean,omitempty"`
	VelocityStd  float64        `json:"velocityStd,omitempty"`

	Draft            float64 `json:"draft,omitempty"`
	Cargo            float64 `json:"cargo"`
	CargoMaxCapacity float64 `json:"cargoMaxCapacity,omitempty"`

	Log ShipLog `json:"log,omitempty"`
}

// HoldTack points the boat as close to the waypoint as the wind allows,
// keeping the wind on the preferred side at the minimum angle of attack.
func (b *Boat) HoldTack(windAngle float64) {
	if b.WindPreferredSide == Port {
		b.Heading = wrap360(windAngle + b.MinAngleOfAttack)
	} else {
		b.Heading = wrap360(windAngle - b.MinAngleOfAttack)
	}
}

// Tack flips the preferred wind side and holds the new tack.
func (b *Boat) Tack(windAngle float64) {
	b.WindPreferredSide = b.WindPreferredSide.Opposite()
	b.HoldTack(windAngle)
}

// LoadCargo sets the cargo on board, refusing more than the boat carries.
func (b *Boat) LoadCargo(mass float64) error {
	if b.CargoMaxCapacity > 0 && mass > b.CargoMaxCapacity {
		return fmt.Errorf("boat: cargo %.1f exceeds capacity %.1f", mass, b.CargoMaxCapacity)
	}
	b.Cargo = mass
	return nil
}

func wrap360(d float64) float64 {
	for d < 0.0 {
		d += 360.0
	}
	for d >= 360.0 {
		d -= 360.0
	}
	return d
}
