package wind

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/nilsmagnus/grib/griblib"
)

// Grid is one GRIB2 field pair (u east, v north) on a regular lat/lon grid.
// It serves both 10m wind and surface ocean current messages.
type Grid struct {
	Date time.Time
	File string
	Lat0 float64
	Lon0 float64
	ΔLat float64
	ΔLon float64
	NLat uint32
	NLon uint32
	U    [][]float64
	V    [][]float64
}

func (g Grid) buildGrid(data []float64) [][]float64 {

	isContinuous := math.Floor(float64(g.NLon)*g.ΔLon) >= 360

	nLon := g.NLon
	if isContinuous {
		nLon++
	}

	grid := make([][]float64, g.NLat)

	p := 0
	for j := uint32(0); j < g.NLat; j++ {
		grid[j] = make([]float64, nLon)
		for i := uint32(0); i < g.NLon; i++ {
			grid[j][i] = data[p]
			p++
		}
		if isContinuous {
			grid[j][g.NLon] = grid[j][0]
		}
	}
	return grid
}

// wind at 10m: discipline 0 (meteorological), category 2 (momentum),
// parameters 2/3 (u/v), first surface type 103 at 10m.
func isWindMessage(m *griblib.Message) bool {
	return m.Section0.Discipline == uint8(0) &&
		m.Section4.ProductDefinitionTemplate.ParameterCategory == uint8(2) &&
		m.Section4.ProductDefinitionTemplate.FirstSurface.Type == 103 &&
		m.Section4.ProductDefinitionTemplate.FirstSurface.Value == 10
}

// surface current: discipline 10 (oceanographic), category 1 (currents),
// parameters 2/3 (u/v).
func isCurrentMessage(m *griblib.Message) bool {
	return m.Section0.Discipline == uint8(10) &&
		m.Section4.ProductDefinitionTemplate.ParameterCategory == uint8(1)
}

// Init loads the wind and current grids of one GRIB file. Either grid may
// come back empty when the file carries only the other kind.
func Init(dir string, date time.Time, file string) (Grid, Grid, error) {
	wind := Grid{Date: date, File: file}
	current := Grid{Date: date, File: file}

	gribfile, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		return wind, current, err
	}
	defer gribfile.Close()

	messages, err := griblib.ReadMessages(gribfile)
	if err != nil {
		return wind, current, err
	}
	for _, message := range messages {
		var g *Grid
		if isWindMessage(message) {
			g = &wind
		} else if isCurrentMessage(message) {
			g = &current
		} else {
			continue
		}
		grid0, ok := message.Section3.Definition.(*griblib.Grid0)
		if !ok {
			continue
		}
		g.Lat0 = float64(grid0.La1 / 1e6)
		g.Lon0 = float64(grid0.Lo1 / 1e6)
		g.ΔLat = float64(grid0.Di / 1e6)
		g.ΔLon = float64(grid0.Dj / 1e6)
		g.NLat = grid0.Nj
		g.NLon = grid0.Ni
		if message.Section4.ProductDefinitionTemplate.ParameterNumber == 2 {
			g.U = g.buildGrid(message.Section7.Data)
		} else if message.Section4.ProductDefinitionTemplate.ParameterNumber == 3 {
			g.V = g.buildGrid(message.Section7.Data)
		}
	}
	return wind, current, nil
}

func (g Grid) complete() bool {
	return g.U != nil && g.V != nil
}

func floorMod(a float64, n float64) float64 {
	return a - n*math.Floor(a/n)
}

func bilinearInterpolate(x float64, y float64, g00 []float64, g10 []float64, g01 []float64, g11 []float64) (float64, float64) {

	rx := (1 - x)
	ry := (1 - y)

	a := rx * ry
	b := x * ry
	c := rx * y
	d := x * y

	u := g00[0]*a + g10[0]*b + g01[0]*c + g11[0]*d
	v := g00[1]*a + g10[1]*b + g01[1]*c + g11[1]*d

	return u, v
}

func (g Grid) interpolate(lat float64, lon float64) (float64, float64) {

	i := math.Abs((lat - g.Lat0) / g.ΔLat)
	j := floorMod(lon-g.Lon0, 360.0) / g.ΔLon

	fi := uint32(i)
	fj := uint32(j)

	if fi+1 >= g.NLat {
		fi = g.NLat - 2
	}
	if fj+1 >= uint32(len(g.U[fi])) {
		fj = uint32(len(g.U[fi])) - 2
	}

	u00 := g.U[fi][fj]
	v00 := g.V[fi][fj]

	u01 := g.U[fi+1][fj]
	v01 := g.V[fi+1][fj]

	u10 := g.U[fi][fj+1]
	v10 := g.V[fi][fj+1]

	u11 := g.U[fi+1][fj+1]
	v11 := g.V[fi+1][fj+1]

	u, v := bilinearInterpolate(j-float64(fj), i-float64(fi), []float64{u00, v00}, []float64{u10, v10}, []float64{u01, v01}, []float64{u11, v11})

	return u, v
}

func midInterpolate(gs []*Grid, lat float64, lon float64, h float64) (float64, float64) {

	if len(gs) == 1 {
		return gs[0].interpolate(lat, lon)
	}

	u1, v1 := gs[0].interpolate(lat, lon)
	u2, v2 := gs[1].interpolate(lat, lon)
	u := u2*h + u1*(1-h)
	v := v2*h + v1*(1-h)

	return u, v
}

// Interpolate blends two forecasts, h the progress from the first toward
// the second, and returns the eastward and northward components.
func Interpolate(g1 []*Grid, g2 []*Grid, lat float64, lon float64, h float64) (float64, float64) {

	u1, v1 := midInterpolate(g1, lat, lon, h)
	if g2 == nil {
		return u1, v1
	}

	u2, v2 := midInterpolate(g2, lat, lon, h)

	u := u2*h + u1*(1-h)
	v := v2*h + v1*(1-h)

	return u, v
}
