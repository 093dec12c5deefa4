package route

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-bouts/sim-server/latlon"
)

func testPlan() Plan {
	return Plan{
		{P1: latlon.New(0, 0), P2: latlon.New(0, 0.9), TackingWidth: 20000, MinProximity: 10},
		{P1: latlon.New(0, 0.9), P2: latlon.New(0, 1.8), TackingWidth: 20000, MinProximity: 10},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, testPlan().Validate())

	assert.ErrorIs(t, Plan{}.Validate(), ErrEmptyPlan)

	p := testPlan()
	p[1].P2 = p[1].P1
	err := p.Validate()
	assert.ErrorIs(t, err, ErrDegenerateLeg)
	assert.Contains(t, err.Error(), "leg 2")
}

func TestStartFinishLeg(t *testing.T) {
	p := testPlan()
	assert.Equal(t, latlon.New(0, 0), p.Start())
	assert.Equal(t, latlon.New(0, 1.8), p.Finish())
	assert.Equal(t, p[0], p.Leg(1))
	assert.Equal(t, p[1], p.Leg(2))
}

func TestArrived(t *testing.T) {
	p := testPlan()

	assert.True(t, p.Arrived(latlon.New(0, 0.9), 1), "exact waypoint")
	assert.True(t, p.Arrived(latlon.New(0.00005, 0.9), 1), "within proximity")
	assert.False(t, p.Arrived(latlon.New(0.5, 0.9), 1), "far off")
	assert.False(t, p.Arrived(latlon.New(0, 0.9), 2), "wrong leg")
}

func TestLength(t *testing.T) {
	p := testPlan()
	// 1.8 degrees of longitude along the equator
	assert.InDelta(t, 200150.0, p.Length(), 50.0)
	assert.InDelta(t, p.Leg(1).Length()+p.Leg(2).Length(), p.Length(), 1e-9)
}

func TestParse(t *testing.T) {
	in := "p1_lat;p1_lon;p2_lat;p2_lon;tacking_width;min_proximity\n" +
		"0;0;0;0.9;20000;10\n" +
		"0;0.9;0;1.8;20000;10\n"

	p, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, p, 2)
	assert.Equal(t, testPlan(), p)
}

func TestParseNoHeader(t *testing.T) {
	p, err := Parse(strings.NewReader("0;0;0;0.9;20000;10\n"))
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, 20000.0, p[0].TackingWidth)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyPlan)

	_, err = Parse(strings.NewReader("header\n0;0;x;0.9;20000;10\n"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("0;0;0;0.9;20000\n"))
	assert.Error(t, err, "wrong field count")

	_, err = Parse(strings.NewReader("1;2;1;2;100;10\n"))
	assert.True(t, errors.Is(err, ErrDegenerateLeg))
}
