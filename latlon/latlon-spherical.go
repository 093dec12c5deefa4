package latlon

import "math"

// LatLonSpherical computes distances and bearings on a spherical earth.
// Every navigation decision uses the haversine distance; the rhumb bearing
// exists only for reported course and track angles.
type LatLonSpherical struct{}

func (LatLonSpherical) DistanceTo(from, to LatLon) float64 {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)
	Δφ := φ2 - φ1

	Δλ := toRadians(to.Lon - from.Lon)

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	δ := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	d := R * δ

	return d
}

func (LatLonSpherical) BearingTo(from, to LatLon) float64 {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)

	Δλ := toRadians(to.Lon - from.Lon)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	y := math.Sin(Δλ) * math.Cos(φ2)
	θ := math.Atan2(y, x)

	b := toDegrees(θ)

	return wrap360(b)
}

func (LatLonSpherical) DistanceAndBearingTo(from, to LatLon) (float64, float64) {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)
	Δφ := φ2 - φ1

	Δλ := toRadians(to.Lon - from.Lon)

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	δ := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	d := R * δ

	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)
	y := math.Sin(Δλ) * math.Cos(φ2)
	θ := math.Atan2(y, x)

	b := toDegrees(θ)

	return d, wrap360(b)
}

func (LatLonSpherical) Destination(from LatLon, bearing float64, distance float64) LatLon {
	φ1 := toRadians(from.Lat)
	λ1 := toRadians(from.Lon)
	θ := toRadians(bearing)

	δ := distance / R

	φ2 := math.Asin(clamp1(math.Sin(φ1)*math.Cos(δ) + math.Cos(φ1)*math.Sin(δ)*math.Cos(θ)))
	λ2 := λ1 + math.Atan2(math.Sin(θ)*math.Sin(δ)*math.Cos(φ1), math.Cos(δ)-math.Sin(φ1)*math.Sin(φ2))
	λ2 = math.Mod(λ2+3*π, 2*π) - π

	return LatLon{Lat: toDegrees(φ2), Lon: toDegrees(λ2)}
}

// RhumbBearingTo is the constant bearing from one point to another along a
// loxodrome. Reporting only, never navigation.
func (LatLonSpherical) RhumbBearingTo(from, to LatLon) float64 {
	φ1 := toRadians(from.Lat)
	φ2 := toRadians(to.Lat)

	Δλ := toRadians(to.Lon - from.Lon)
	if Δλ > π {
		Δλ -= 2 * π
	}
	if Δλ < -π {
		Δλ += 2 * π
	}

	Δψ := math.Log(math.Tan(φ2/2+π/4) / math.Tan(φ1/2+π/4))
	θ := math.Atan2(Δλ, Δψ)

	return wrap360(toDegrees(θ))
}

// IntermediatePoint interpolates the great circle between from and to.
// f=0 is from, f=1 is to, values outside [0,1] extrapolate the circle.
func (s LatLonSpherical) IntermediatePoint(from, to LatLon, f float64) LatLon {
	δ := s.DistanceTo(from, to) / R
	if δ == 0 {
		return from
	}

	φ1 := toRadians(from.Lat)
	λ1 := toRadians(from.Lon)
	φ2 := toRadians(to.Lat)
	λ2 := toRadians(to.Lon)

	a := math.Sin((1-f)*δ) / math.Sin(δ)
	b := math.Sin(f*δ) / math.Sin(δ)

	x := a*math.Cos(φ1)*math.Cos(λ1) + b*math.Cos(φ2)*math.Cos(λ2)
	y := a*math.Cos(φ1)*math.Sin(λ1) + b*math.Cos(φ2)*math.Sin(λ2)
	z := a*math.Sin(φ1) + b*math.Sin(φ2)

	φ3 := math.Atan2(z, math.Sqrt(x*x+y*y))
	λ3 := math.Atan2(y, x)

	return LatLon{Lat: toDegrees(φ3), Lon: toDegrees(λ3)}
}
