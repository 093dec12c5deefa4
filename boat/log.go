package boat

import (
	"time"

	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/physics"
)

// NavigationStatus uses the AIS status codes.
type NavigationStatus int

const (
	UnderwayUsingEngine NavigationStatus = 0
	AtAnchor            NavigationStatus = 1
	Moored              NavigationStatus = 5
	UnderwaySailing     NavigationStatus = 8
)

func (s NavigationStatus) String() string {
	switch s {
	case UnderwayUsingEngine:
		return "underway using engine"
	case AtAnchor:
		return "at anchor"
	case Moored:
		return "moored"
	case UnderwaySailing:
		return "underway sailing"
	}
	return "undefined"
}

// LogEntry is one appended record of the ship log. Entries are never
// rewritten once appended.
type LogEntry struct {
	Timestamp          time.Time        `json:"timestamp"`
	CoordinatesInitial latlon.LatLon    `json:"coordinatesInitial"`
	CoordinatesCurrent latlon.LatLon    `json:"coordinatesCurrent"`
	CoordinatesFinal   latlon.LatLon    `json:"coordinatesFinal"`
	CargoOnBoard       float64          `json:"cargoOnBoard"`
	Velocity           physics.Vector   `json:"velocity"`
	Course             float64          `json:"course"`
	Heading            float64          `json:"heading"`
	// TrackAngle is the observed bearing from the previous entry's
	// location, nil on the first entry.
	TrackAngle  *float64         `json:"trackAngle,omitempty"`
	TrueBearing float64          `json:"trueBearing"`
	Draft       float64          `json:"draft"`
	Status      NavigationStatus `json:"navigationStatus"`
}

type ShipLog []LogEntry

func (l ShipLog) Last() *LogEntry {
	if len(l) == 0 {
		return nil
	}
	return &l[len(l)-1]
}
