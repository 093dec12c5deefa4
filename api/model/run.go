package model

import (
	"time"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/route"
)

// Run is a simulation request: a boat, its route plan, and the stepping
// parameters. StartTimes turns the request into an ensemble.
type Run struct {
	Boat       boat.Boat   `json:"boat"`
	Plan       route.Plan  `json:"plan"`
	Params     Params      `json:"params"`
	StartTime  time.Time   `json:"startTime"`
	StartTimes []time.Time `json:"startTimes,omitempty"`
}

type Params struct {
	// Method selects the velocity model: const, meanstd or weather.
	Method        string  `json:"method"`
	StepHours     float64 `json:"stepHours"`
	MaxIterations int     `json:"maxIterations"`
	WindFactor    float64 `json:"windFactor"`
	Seed          int64   `json:"seed"`
	Workers       int     `json:"workers"`
	Persist       bool    `json:"persist"`
}
