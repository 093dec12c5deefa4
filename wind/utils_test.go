package wind

import (
	"math"
	"testing"
)

func TestTwa(t *testing.T) {
	cases := []struct{ heading, wind, want float64 }{
		{0, 0, 0},
		{0, 90, 90},
		{90, 0, -90},
		{0, 180, 180},
		{350, 10, 20},
		{10, 350, -20},
	}
	for _, c := range cases {
		if got := Twa(c.heading, c.wind); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("Twa(%f, %f) = %f; want %f", c.heading, c.wind, got, c.want)
		}
	}
}

func TestTwaRange(t *testing.T) {
	for h := 0.0; h < 360.0; h += 17.0 {
		for w := 0.0; w < 360.0; w += 17.0 {
			twa := Twa(h, w)
			if twa <= -180 || twa > 180 {
				t.Fatalf("Twa(%f, %f) = %f out of (-180,180]", h, w, twa)
			}
		}
	}
}

func TestHeadingInvertsTwa(t *testing.T) {
	for h := 0.0; h < 360.0; h += 23.0 {
		for w := 0.0; w < 360.0; w += 23.0 {
			got := Heading(Twa(h, w), w)
			if math.Abs(got-h) > 1e-9 {
				t.Errorf("Heading(Twa(%f, %f), %f) = %f; want %f", h, w, w, got, h)
			}
		}
	}
}
