// Package physics holds the polar velocity vector shared by the wind grids
// and the simulation. Angles are degrees clockwise from true north, in the
// direction the vector points toward.
package physics

import "math"

type Vector struct {
	Magnitude float64 `json:"magnitude"`
	Angle     float64 `json:"angle"`
}

func New(magnitude, angle float64) Vector {
	return Vector{Magnitude: magnitude, Angle: wrap360(angle)}
}

// UV splits the vector into its eastward and northward components.
func (v Vector) UV() (float64, float64) {
	θ := v.Angle * math.Pi / 180.0
	return v.Magnitude * math.Sin(θ), v.Magnitude * math.Cos(θ)
}

// FromUV builds a vector from eastward and northward components.
func FromUV(u, v float64) Vector {
	m := math.Sqrt(u*u + v*v)
	if m == 0 {
		return Vector{}
	}
	return Vector{Magnitude: m, Angle: wrap360(math.Atan2(u, v) * 180.0 / math.Pi)}
}

// Add sums two vectors component-wise. Magnitudes never add directly, a
// 5 m/s boat in a 2 m/s counter current makes 3 m/s over ground.
func (v Vector) Add(o Vector) Vector {
	u1, v1 := v.UV()
	u2, v2 := o.UV()
	return FromUV(u1+u2, v1+v2)
}

func (v Vector) Sub(o Vector) Vector {
	u1, v1 := v.UV()
	u2, v2 := o.UV()
	return FromUV(u1-u2, v1-v2)
}

func wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	return d - 360.0*math.Floor(d/360.0)
}
