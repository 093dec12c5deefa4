package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-bouts/sim-server/boat"
	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/route"
	"github.com/a-bouts/sim-server/sim"
)

func testResult() (*boat.Boat, *sim.Result) {
	b := &boat.Boat{
		Name: "Ariel",
		Plan: route.Plan{
			{P1: latlon.New(0, 0), P2: latlon.New(0, 0.9), TackingWidth: 20000, MinProximity: 10},
		},
	}
	t0 := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	return b, &sim.Result{
		Status:     sim.Completed,
		Iterations: 3,
		Log: boat.ShipLog{
			{Timestamp: t0, CoordinatesCurrent: latlon.New(0, 0), CargoOnBoard: 500},
			{Timestamp: t0.Add(time.Hour), CoordinatesCurrent: latlon.New(0, 0.3), CargoOnBoard: 500},
			{Timestamp: t0.Add(2 * time.Hour), CoordinatesCurrent: latlon.New(0, 0.9), CargoOnBoard: 500, Status: boat.Moored},
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	return s
}

func TestSaveVoyage(t *testing.T) {
	s := openTestStore(t)

	b, res := testResult()
	id, err := s.SaveVoyage(b, res)
	require.NoError(t, err)
	require.NotZero(t, id)

	v, err := s.Voyage(id)
	require.NoError(t, err)

	assert.Equal(t, "Ariel", v.BoatName)
	assert.Equal(t, "completed", v.Status)
	assert.Equal(t, 3, v.Iterations)
	assert.True(t, res.Log[0].Timestamp.Equal(v.StartTime))
	assert.InDelta(t, b.Plan.Length(), v.Distance, 1e-6)

	require.Len(t, v.Entries, 3)
	assert.Equal(t, 0.9, v.Entries[2].Lon)
	assert.Equal(t, int(boat.Moored), v.Entries[2].Status)
}

func TestVoyages(t *testing.T) {
	s := openTestStore(t)

	b, res := testResult()
	_, err := s.SaveVoyage(b, res)
	require.NoError(t, err)
	b.Name = "Belafonte"
	_, err = s.SaveVoyage(b, res)
	require.NoError(t, err)

	voyages, err := s.Voyages()
	require.NoError(t, err)
	require.Len(t, voyages, 2)
	for _, v := range voyages {
		assert.Empty(t, v.Entries, "listing must not load entries")
	}
}

func TestVoyageNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Voyage(99)
	assert.Error(t, err)
}
