package latlon

import "math"

// CrossTrackTo is the closed form minimum distance from p3 to the great
// circle through p1 and p2, by the spherical law of sines.
func (s LatLonSpherical) CrossTrackTo(p1, p2, p3 LatLon) float64 {
	if p3 == p1 || p3 == p2 {
		return 0
	}

	b := s.DistanceTo(p1, p3)
	γ := toRadians(s.BearingTo(p1, p2) - s.BearingTo(p1, p3))

	return R * math.Asin(clamp1(math.Abs(math.Sin(γ)*math.Sin(b/R))))
}

// CrossTrackBisectTo estimates the same minimum distance numerically. A
// point c(t) walks the great circle from p1 (t=0) to p2 (t=1) and the sign
// of the forward difference of t ↦ distance(c(t), p3) drives a bisection.
// Both methods stay within a meter of each other when the nearest point of
// the circle falls between p1 and p2.
func (s LatLonSpherical) CrossTrackBisectTo(p1, p2, p3 LatLon) float64 {
	if p3 == p1 || p3 == p2 {
		return 0
	}

	f := func(t float64) float64 {
		return s.DistanceTo(s.IntermediatePoint(p1, p2, t), p3)
	}

	a, b := 0.0, 1.0
	c := (a + b) / 2

	for i := 0; i < 150; i++ {
		c = (a + b) / 2
		if f(c) < 1.0 || math.Abs(f(a)-f(b))/2 < 1.0 {
			break
		}

		h := (b - a) / 1000.0
		dfa := f(a+h) - f(a)
		dfc := f(c+h) - f(c)

		if dfa*dfc < 0 {
			b = c
		} else {
			a = c
		}
	}

	return f(c)
}
