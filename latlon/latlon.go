package latlon

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const π = math.Pi

// R is the mean earth radius in meters.
const R = 6371e3

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// New wraps latitude into [-90,90] and longitude into [-180,360).
func New(lat, lon float64) LatLon {
	for lon < -180.0 {
		lon += 360.0
	}
	for lon >= 360.0 {
		lon -= 360.0
	}
	for lat < -90.0 {
		lat += 180.0
	}
	for lat > 90.0 {
		lat -= 180.0
	}
	return LatLon{Lat: lat, Lon: lon}
}

// Parse reads a "lat,lon" decimal degrees pair.
func Parse(s string) (LatLon, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return LatLon{}, fmt.Errorf("latlon: invalid coordinate '%s'", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLon{}, fmt.Errorf("latlon: invalid latitude '%s'", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLon{}, fmt.Errorf("latlon: invalid longitude '%s'", parts[1])
	}
	return New(lat, lon), nil
}

func (p LatLon) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

func toRadians(a float64) float64 {
	return a * π / 180.0
}

func toDegrees(a float64) float64 {
	return a * 180.0 / π
}

func wrap360(d float64) float64 {
	if 0.0 <= d && d < 360.0 {
		return d
	}
	return d - 360.0*math.Floor(d/360.0)
}

// asin argument clamp, degenerate roundings can push it past ±1.
func clamp1(x float64) float64 {
	if x > 1.0 {
		return 1.0
	}
	if x < -1.0 {
		return -1.0
	}
	return x
}
