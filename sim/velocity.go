package sim

import (
	"math"
	"time"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/physics"
	"github.com/a-bouts/sim-server/wind"
)

// DefaultWindFactor scales wind speed into boat speed through water for the
// weather driven model. A proportional model, not a force balance.
const DefaultWindFactor = 1.5

// Rand draws uniformly from [-1,1]. Injected so ensemble runs are
// reproducible under test.
type Rand interface {
	Uniform() float64
}

// Sample is one sub-step's velocity decision. Wind is only meaningful when
// Tacking is set, which also turns on corridor enforcement in the stepper.
type Sample struct {
	Velocity physics.Vector
	Wind     physics.Vector
	Tacking  bool
}

// VelocityModel decides the velocity vector for one sub-step, fixing the
// boat's heading as a side effect.
type VelocityModel interface {
	// Validate runs before the stepping loop, no partial log is produced
	// on failure.
	Validate(b *boat.Boat) error
	Compute(b *boat.Boat, at time.Time) (Sample, error)
}

// ConstantMean sails straight legs at the boat's mean velocity.
type ConstantMean struct{}

func (ConstantMean) Validate(b *boat.Boat) error {
	if b.VelocityMean <= 0 {
		return ErrMissingMeanVelocity
	}
	return nil
}

func (ConstantMean) Compute(b *boat.Boat, at time.Time) (Sample, error) {
	b.Heading = geo.BearingTo(b.Location, b.Plan.Leg(b.CurrentLeg).P2)
	return Sample{Velocity: physics.New(b.VelocityMean, b.Heading)}, nil
}

// MeanStd perturbs the mean velocity by a uniform share of the standard
// deviation each sub-step, for Monte-Carlo ensembles.
type MeanStd struct {
	Rand Rand
}

func (m MeanStd) Validate(b *boat.Boat) error {
	if b.VelocityMean <= 0 {
		return ErrMissingMeanVelocity
	}
	if b.VelocityStd < 0 {
		return ErrInvalidStdVelocity
	}
	if m.Rand == nil {
		return ErrMissingRand
	}
	return nil
}

func (m MeanStd) Compute(b *boat.Boat, at time.Time) (Sample, error) {
	b.Heading = geo.BearingTo(b.Location, b.Plan.Leg(b.CurrentLeg).P2)
	speed := b.VelocityMean + m.Rand.Uniform()*b.VelocityStd
	if speed < 0 {
		speed = 0
	}
	return Sample{Velocity: physics.New(speed, b.Heading)}, nil
}

// WeatherDriven sails by the wind: speed through water proportional to the
// wind speed, heading held off the wind when the waypoint is inside the
// no-sail cone, drifted by the ocean current when one is known.
type WeatherDriven struct {
	Provider wind.Provider
	// K is the wind speed factor, DefaultWindFactor when zero.
	K float64
}

func (m WeatherDriven) Validate(b *boat.Boat) error {
	if m.Provider == nil {
		return ErrMissingProvider
	}
	if b.MinAngleOfAttack <= 0 {
		return ErrMissingAngleOfAttack
	}
	return nil
}

func (m WeatherDriven) Compute(b *boat.Boat, at time.Time) (Sample, error) {
	w, err := m.Provider.WindAt(b.Location, at)
	if err != nil {
		return Sample{}, err
	}

	bearing := geo.BearingTo(b.Location, b.Plan.Leg(b.CurrentLeg).P2)
	if math.Abs(wind.Twa(bearing, w.Angle)) < b.MinAngleOfAttack {
		b.HoldTack(w.Angle)
	} else {
		b.Heading = bearing
	}

	k := m.K
	if k == 0 {
		k = DefaultWindFactor
	}
	velocity := physics.New(k*w.Magnitude, b.Heading)

	current, ok, err := m.Provider.CurrentAt(b.Location, at)
	if err != nil {
		return Sample{}, err
	}
	if ok {
		velocity = velocity.Add(current)
	}

	return Sample{Velocity: velocity, Wind: w, Tacking: true}, nil
}
