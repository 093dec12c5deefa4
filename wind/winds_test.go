package wind

import (
	"math"
	"testing"
	"time"
)

func TestFileDate(t *testing.T) {
	cases := []struct {
		file string
		want time.Time
	}{
		{"2024030106.f000", time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)},
		{"2024030106.f003", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
		{"2024030118.f024", time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := fileDate(c.file)
		if err != nil {
			t.Errorf("fileDate(%s): %v", c.file, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("fileDate(%s) = %s; want %s", c.file, got, c.want)
		}
	}
}

func TestFileDateMalformed(t *testing.T) {
	for _, f := range []string{"nodot", "2024030106.fxx", "notadate.f003", "2024030106.f003.tmp", "2024030106.f"} {
		if _, err := fileDate(f); err == nil {
			t.Errorf("fileDate(%s) should fail", f)
		}
	}
}

func stampGrids(stamps ...string) map[string]ForecastGrids {
	grids := map[string]ForecastGrids{}
	for _, s := range stamps {
		date, _ := time.Parse("2006010215", s)
		grids[s] = ForecastGrids{&Grid{Date: date, File: s + ".f000"}}
	}
	return grids
}

func TestFindGrids(t *testing.T) {
	grids := stampGrids("2024030106", "2024030112")

	// between two forecasts, halfway
	g1, g2, h := findGrids(grids, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	if g1 == nil || g2 == nil {
		t.Fatal("findGrids between stamps should return a pair")
	}
	if g1[0].File != "2024030106.f000" || g2[0].File != "2024030112.f000" {
		t.Errorf("findGrids pair = %s, %s", g1[0].File, g2[0].File)
	}
	if math.Abs(h-0.5) > 1e-9 {
		t.Errorf("findGrids h = %f; want 0.5", h)
	}

	// before the first forecast
	g1, g2, h = findGrids(grids, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if g1 == nil || g2 != nil || h != 0 {
		t.Errorf("findGrids before first = %v, %v, %f; want first, nil, 0", g1, g2, h)
	}
	if g1[0].File != "2024030106.f000" {
		t.Errorf("findGrids before first picked %s", g1[0].File)
	}

	// after the last forecast
	g1, g2, h = findGrids(grids, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	if g1 == nil || g2 != nil || h != 0 {
		t.Errorf("findGrids after last = %v, %v, %f; want last, nil, 0", g1, g2, h)
	}
	if g1[0].File != "2024030112.f000" {
		t.Errorf("findGrids after last picked %s", g1[0].File)
	}
}

func TestFindGridsEmpty(t *testing.T) {
	g1, g2, h := findGrids(map[string]ForecastGrids{}, time.Now())
	if g1 != nil || g2 != nil || h != 0 {
		t.Errorf("findGrids on empty map = %v, %v, %f; want nil, nil, 0", g1, g2, h)
	}
}
