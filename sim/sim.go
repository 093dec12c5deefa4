// Package sim steps a vessel along its route plan in fixed time steps,
// splitting a step whenever a waypoint or the tacking corridor boundary is
// crossed, and appends a ship log entry per sub-step.
package sim

import (
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/physics"
)

var (
	ErrMissingModel         = errors.New("sim: missing velocity model")
	ErrMissingRoutePlan     = errors.New("sim: missing route plan")
	ErrMissingMeanVelocity  = errors.New("sim: missing mean velocity")
	ErrInvalidStdVelocity   = errors.New("sim: negative velocity standard deviation")
	ErrMissingRand          = errors.New("sim: missing random source")
	ErrMissingProvider      = errors.New("sim: missing weather provider")
	ErrMissingAngleOfAttack = errors.New("sim: missing minimum angle of attack")
	ErrInvalidTimeStep      = errors.New("sim: time step must be positive")
	ErrInvalidIterations    = errors.New("sim: max iterations must be positive")
	ErrTimestampOverflow    = errors.New("sim: timestamp overflow")
)

type Status int

const (
	Completed Status = iota
	IterationsExhausted
)

func (s Status) String() string {
	if s == Completed {
		return "completed"
	}
	return "iterations exhausted"
}

var geo latlon.LatLonSpherical

// Simulation is the read-only configuration of one or more runs.
type Simulation struct {
	Model         VelocityModel
	Start         time.Time
	Step          time.Duration
	MaxIterations int
	// Hook observes the boat after each iteration. Optional.
	Hook func(iteration int, b *boat.Boat)
}

type Result struct {
	Status     Status       `json:"status"`
	Iterations int          `json:"iterations"`
	Log        boat.ShipLog `json:"log"`
}

func (s *Simulation) validate(b *boat.Boat) error {
	if s.Model == nil {
		return ErrMissingModel
	}
	if s.Step <= 0 {
		return ErrInvalidTimeStep
	}
	if s.MaxIterations <= 0 {
		return ErrInvalidIterations
	}
	if b.Plan == nil {
		return ErrMissingRoutePlan
	}
	if err := b.Plan.Validate(); err != nil {
		return err
	}
	return s.Model.Validate(b)
}

// Run steps the boat along its plan until the final waypoint is reached or
// the iteration budget runs out. The mutated boat carries the appended ship
// log; the result references the entries of this run only. A mid-run error
// returns the partial result alongside the error.
func (s *Simulation) Run(b *boat.Boat) (*Result, error) {
	if err := s.validate(b); err != nil {
		return nil, err
	}

	initial := b.Plan.Start()
	final := b.Plan.Finish()
	course := geo.RhumbBearingTo(initial, final)

	b.Location = initial
	b.CurrentLeg = 1
	b.Heading = geo.BearingTo(initial, b.Plan.Leg(1).P2)
	b.Velocity = physics.Vector{}

	mark := len(b.Log)
	b.Log = append(b.Log, s.entry(b, s.Start, initial, final, course, nil))

	res := &Result{Status: IterationsExhausted}
	step := s.Step.Seconds()
	leftover := 0.0

	for res.Iterations < s.MaxIterations {
		res.Iterations++

		budget := step
		if leftover > 0 {
			budget = leftover
		}
		leftover = 0

		if b.Plan.Arrived(b.Location, b.CurrentLeg) {
			if b.CurrentLeg == len(b.Plan) {
				b.Velocity = physics.Vector{}
				prev := b.Log.Last()
				track := geo.RhumbBearingTo(prev.CoordinatesCurrent, b.Location)
				e := s.entry(b, prev.Timestamp, initial, final, course, &track)
				e.Status = boat.Moored
				b.Log = append(b.Log, e)
				res.Status = Completed
				if s.Hook != nil {
					s.Hook(res.Iterations, b)
				}
				break
			}
			b.CurrentLeg++
		}

		now := b.Log.Last().Timestamp
		sample, err := s.Model.Compute(b, now)
		if err != nil {
			res.Log = b.Log[mark:]
			return res, err
		}
		b.Velocity = sample.Velocity

		leg := b.Plan.Leg(b.CurrentLeg)
		dist := sample.Velocity.Magnitude * budget
		distWp := geo.DistanceTo(b.Location, leg.P2)

		if dist > distWp {
			leftover = budget - distWp/sample.Velocity.Magnitude
			dist = distWp
		}

		// the corridor check also covers a waypoint-clipped move: close to
		// the waypoint a held tack can still point out of the corridor
		tacked := false
		if sample.Tacking && dist > 0 {
			next := geo.Destination(b.Location, sample.Velocity.Angle, dist)
			dCurrent := geo.CrossTrackTo(leg.P1, leg.P2, b.Location)
			dNext := geo.CrossTrackTo(leg.P1, leg.P2, next)
			half := leg.TackingWidth / 2

			if dCurrent <= half && dNext > half {
				// about to leave the corridor: clip to the boundary,
				// assuming the cross-track distance grows linearly over
				// the sub-step, and tack there
				dist = dist * (half - dCurrent) / (dNext - dCurrent)
				leftover = budget - dist/sample.Velocity.Magnitude
				tacked = true
			}
		}

		b.Location = geo.Destination(b.Location, sample.Velocity.Angle, dist)
		if tacked {
			log.Debugf("Tacking to %s at %s", b.WindPreferredSide.Opposite(), b.Location)
			b.Tack(sample.Wind.Angle)
		}

		prev := b.Log.Last()
		ts, err := advance(prev.Timestamp, budget-leftover)
		if err != nil {
			res.Log = b.Log[mark:]
			return res, err
		}

		track := geo.RhumbBearingTo(prev.CoordinatesCurrent, b.Location)
		b.Log = append(b.Log, s.entry(b, ts, initial, final, course, &track))

		if s.Hook != nil {
			s.Hook(res.Iterations, b)
		}
	}

	res.Log = b.Log[mark:]
	return res, nil
}

func (s *Simulation) entry(b *boat.Boat, ts time.Time, initial, final latlon.LatLon, course float64, track *float64) boat.LogEntry {
	return boat.LogEntry{
		Timestamp:          ts,
		CoordinatesInitial: initial,
		CoordinatesCurrent: b.Location,
		CoordinatesFinal:   final,
		CargoOnBoard:       b.Cargo,
		Velocity:           b.Velocity,
		Course:             course,
		Heading:            b.Heading,
		TrackAngle:         track,
		TrueBearing:        geo.BearingTo(b.Location, final),
		Draft:              b.Draft,
		Status:             boat.UnderwaySailing,
	}
}

func advance(t time.Time, seconds float64) (time.Time, error) {
	if seconds >= float64(math.MaxInt64)/float64(time.Second) {
		return t, ErrTimestampOverflow
	}
	d := time.Duration(seconds * float64(time.Second))
	if seconds > 0 && d <= 0 {
		return t, ErrTimestampOverflow
	}
	t2 := t.Add(d)
	if d > 0 && t2.Before(t) {
		return t, ErrTimestampOverflow
	}
	return t2, nil
}
