package latlon

import (
	"math"
	"testing"
)

func TestBearingTo(t *testing.T) {
	s := LatLonSpherical{}

	p1 := LatLon{Lat: 0, Lon: 0}
	p2 := LatLon{Lat: 10, Lon: 0}
	b := s.BearingTo(p1, p2)
	if math.Round(b) != 0.0 {
		t.Errorf("{%f,%f}.bearingTo({%f,%f}) = %f; want 0", p1.Lat, p1.Lon, p2.Lat, p2.Lon, b)
	}

	p2 = LatLon{Lat: 0, Lon: 10}
	b = s.BearingTo(p1, p2)
	if math.Round(b) != 90.0 {
		t.Errorf("{%f,%f}.bearingTo({%f,%f}) = %f; want 90", p1.Lat, p1.Lon, p2.Lat, p2.Lon, b)
	}

	p1 = LatLon{Lat: -5, Lon: 175}
	p2 = LatLon{Lat: 5, Lon: -175}
	b = s.BearingTo(p1, p2)
	if math.Round(b) != 45.0 {
		t.Errorf("{%f,%f}.bearingTo({%f,%f}) = %f; want 45", p1.Lat, p1.Lon, p2.Lat, p2.Lon, b)
	}
}

func TestDistanceTo(t *testing.T) {
	s := LatLonSpherical{}

	// one degree of longitude on the equator
	p1 := LatLon{Lat: 0, Lon: 0}
	p2 := LatLon{Lat: 0, Lon: 1}
	want := R * toRadians(1)
	d := s.DistanceTo(p1, p2)
	if math.Abs(d-want) > 0.001 {
		t.Errorf("DistanceTo = %f; want %f", d, want)
	}

	if d := s.DistanceTo(p1, p1); d != 0 {
		t.Errorf("DistanceTo same point = %f; want 0", d)
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	s := LatLonSpherical{}

	p := LatLon{Lat: 48.3, Lon: -4.6}
	for bearing := 0.0; bearing < 360.0; bearing += 7.5 {
		for _, d := range []float64{1.0, 150.0, 12345.0, 250000.0} {
			to := s.Destination(p, bearing, d)
			got := s.DistanceTo(p, to)
			if math.Abs(got-d) > 1e-6*d+1e-6 {
				t.Errorf("distance(p, destination(p, %f, %f)) = %f; want %f", bearing, d, got, d)
			}
		}
	}
}

func TestDestinationBearing(t *testing.T) {
	s := LatLonSpherical{}

	p := LatLon{Lat: 30, Lon: 10}
	to := s.Destination(p, 90, 100000)
	b := s.BearingTo(p, to)
	if math.Abs(b-90) > 0.5 {
		t.Errorf("BearingTo destination = %f; want ~90", b)
	}
}

func TestRhumbBearingTo(t *testing.T) {
	s := LatLonSpherical{}

	// along a parallel the rhumb bearing is exactly east
	b := s.RhumbBearingTo(LatLon{Lat: 40, Lon: 0}, LatLon{Lat: 40, Lon: 30})
	if math.Abs(b-90) > 1e-9 {
		t.Errorf("RhumbBearingTo along parallel = %f; want 90", b)
	}

	b = s.RhumbBearingTo(LatLon{Lat: 0, Lon: 0}, LatLon{Lat: 10, Lon: 0})
	if math.Abs(b) > 1e-9 {
		t.Errorf("RhumbBearingTo along meridian = %f; want 0", b)
	}
}

func TestIntermediatePoint(t *testing.T) {
	s := LatLonSpherical{}

	p1 := LatLon{Lat: 0, Lon: 0}
	p2 := LatLon{Lat: 0, Lon: 100}

	mid := s.IntermediatePoint(p1, p2, 0.5)
	if math.Abs(mid.Lat) > 1e-9 || math.Abs(mid.Lon-50) > 1e-9 {
		t.Errorf("IntermediatePoint(0.5) = %v; want {0, 50}", mid)
	}

	if got := s.IntermediatePoint(p1, p2, 0); math.Abs(got.Lat-p1.Lat) > 1e-9 || math.Abs(got.Lon-p1.Lon) > 1e-9 {
		t.Errorf("IntermediatePoint(0) = %v; want %v", got, p1)
	}
	if got := s.IntermediatePoint(p1, p2, 1); math.Abs(got.Lat-p2.Lat) > 1e-9 || math.Abs(got.Lon-p2.Lon) > 1e-9 {
		t.Errorf("IntermediatePoint(1) = %v; want %v", got, p2)
	}
}

func TestNew(t *testing.T) {
	p := New(92, -190)
	if p.Lat != -88 || p.Lon != 170 {
		t.Errorf("New(92, -190) = %v; want {-88, 170}", p)
	}

	p = New(-91, 370)
	if p.Lat != 89 || p.Lon != 10 {
		t.Errorf("New(-91, 370) = %v; want {89, 10}", p)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("52.5200, 13.4050")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Lat != 52.52 || p.Lon != 13.405 {
		t.Errorf("Parse = %v; want {52.52, 13.405}", p)
	}

	if _, err := Parse("52.52"); err == nil {
		t.Error("Parse('52.52') should fail")
	}
	if _, err := Parse("a,b"); err == nil {
		t.Error("Parse('a,b') should fail")
	}
}

func TestWrap360(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{359.9, 359.9},
		{360, 0},
		{-10, 350},
		{730, 10},
		{-500, 220},
	}
	for _, c := range cases {
		if got := wrap360(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("wrap360(%f) = %f; want %f", c.in, got, c.want)
		}
	}
}
