package boat

import (
	"testing"
)

func TestHoldTack(t *testing.T) {
	b := &Boat{MinAngleOfAttack: 50}

	b.WindPreferredSide = Starboard
	b.HoldTack(0)
	if b.Heading != 310 {
		t.Errorf("starboard hold into a north wind: heading = %f; want 310", b.Heading)
	}

	b.WindPreferredSide = Port
	b.HoldTack(0)
	if b.Heading != 50 {
		t.Errorf("port hold into a north wind: heading = %f; want 50", b.Heading)
	}

	b.WindPreferredSide = Starboard
	b.HoldTack(330)
	if b.Heading != 280 {
		t.Errorf("starboard hold, wind 330: heading = %f; want 280", b.Heading)
	}
}

func TestHoldTackHeadingRange(t *testing.T) {
	for _, side := range []Side{Starboard, Port} {
		for _, aoa := range []float64{30, 50, 170} {
			for wind := 0.0; wind < 360.0; wind += 11.25 {
				b := &Boat{MinAngleOfAttack: aoa, WindPreferredSide: side}
				b.HoldTack(wind)
				if b.Heading < 0 || b.Heading >= 360 {
					t.Fatalf("heading %f out of [0,360) for side %v aoa %f wind %f",
						b.Heading, side, aoa, wind)
				}
			}
		}
	}
}

func TestTack(t *testing.T) {
	b := &Boat{MinAngleOfAttack: 50, WindPreferredSide: Starboard}

	b.Tack(0)
	if b.WindPreferredSide != Port {
		t.Errorf("side after tack = %v; want port", b.WindPreferredSide)
	}
	if b.Heading != 50 {
		t.Errorf("heading after tack = %f; want 50", b.Heading)
	}

	b.Tack(0)
	if b.WindPreferredSide != Starboard {
		t.Errorf("side after second tack = %v; want starboard", b.WindPreferredSide)
	}
	if b.Heading != 310 {
		t.Errorf("heading after second tack = %f; want 310", b.Heading)
	}
}

func TestSideOpposite(t *testing.T) {
	if Starboard.Opposite() != Port {
		t.Error("starboard.Opposite() != port")
	}
	if Port.Opposite() != Starboard {
		t.Error("port.Opposite() != starboard")
	}
}

func TestLoadCargo(t *testing.T) {
	b := &Boat{CargoMaxCapacity: 1000}

	if err := b.LoadCargo(800); err != nil {
		t.Fatalf("LoadCargo(800): %v", err)
	}
	if b.Cargo != 800 {
		t.Errorf("cargo = %f; want 800", b.Cargo)
	}

	if err := b.LoadCargo(1200); err == nil {
		t.Error("LoadCargo(1200) should exceed capacity")
	}
	if b.Cargo != 800 {
		t.Errorf("cargo after refused load = %f; want 800", b.Cargo)
	}

	// unlimited when no capacity is set
	b = &Boat{}
	if err := b.LoadCargo(1e9); err != nil {
		t.Errorf("LoadCargo without capacity: %v", err)
	}
}
