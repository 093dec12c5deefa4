package wind

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/physics"
)

var ErrNoData = errors.New("wind: no forecast data")

// ForecastGrids holds the one or two grids valid at the same stamp.
type ForecastGrids []*Grid

func (g ForecastGrids) String() string {
	res := ""
	res += g[0].Date.Format("2006010215") + "(" + g[0].File
	if len(g) > 1 {
		res += "," + g[1].File
	}
	res += ")"
	return res
}

// Winds serves interpolated wind and current vectors from a directory of
// GRIB files named <yyyymmddhh>.f<hhh>, re-merged on a schedule.
type Winds struct {
	dir      string
	winds    map[string](ForecastGrids)
	currents map[string](ForecastGrids)
	lock     sync.RWMutex
}

// InitWinds loads every grid under dir and schedules a re-merge every 15
// seconds to pick up freshly downloaded files.
func InitWinds(dir string) *Winds {
	w := &Winds{
		dir:      dir,
		winds:    map[string]ForecastGrids{},
		currents: map[string]ForecastGrids{},
	}
	w.Merge()

	s := gocron.NewScheduler()
	jobxx := s.Every(15).Seconds()
	jobxx.Do(w.Merge)

	go s.Start()

	return w
}

func findGrids(grids map[string]ForecastGrids, m time.Time) (ForecastGrids, ForecastGrids, float64) {
	stamp := m.Format("2006010215")

	keys := make([]string, 0, len(grids))
	for k := range grids {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return nil, nil, 0
	}
	sort.Strings(keys)
	if keys[0] > stamp {
		return grids[keys[0]], nil, 0
	}
	for i := range keys {
		if keys[i] > stamp {
			h := m.Sub(grids[keys[i-1]][0].Date).Minutes()
			delta := grids[keys[i]][0].Date.Sub(grids[keys[i-1]][0].Date).Minutes()
			return grids[keys[i-1]], grids[keys[i]], h / delta
		}
	}
	return grids[keys[len(keys)-1]], nil, 0
}

func (w *Winds) WindAt(p latlon.LatLon, t time.Time) (physics.Vector, error) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	g1, g2, h := findGrids(w.winds, t)
	if g1 == nil {
		return physics.Vector{}, ErrNoData
	}
	u, v := Interpolate(g1, g2, p.Lat, p.Lon, h)
	return physics.FromUV(u, v), nil
}

func (w *Winds) CurrentAt(p latlon.LatLon, t time.Time) (physics.Vector, bool, error) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	g1, g2, h := findGrids(w.currents, t)
	if g1 == nil {
		return physics.Vector{}, false, nil
	}
	u, v := Interpolate(g1, g2, p.Lat, p.Lon, h)
	return physics.FromUV(u, v), true, nil
}

// Stamps lists the forecast stamps currently loaded, oldest first.
func (w *Winds) Stamps() []string {
	w.lock.RLock()
	defer w.lock.RUnlock()

	keys := make([]string, 0, len(w.winds))
	for k := range w.winds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge reconciles the loaded grids with the files on disk: grids whose
// file disappeared are dropped, new files are loaded.
func (w *Winds) Merge() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	for _, grids := range []map[string]ForecastGrids{w.winds, w.currents} {
		var toRemove []string
		for k, gs := range grids {
			if _, err := os.Stat(filepath.Join(w.dir, gs[0].File)); os.IsNotExist(err) {
				toRemove = append(toRemove, k)
			}
		}
		for _, k := range toRemove {
			log.Infof("Remove forecast %s", k)
			delete(grids, k)
		}
	}

	var files []string
	err := filepath.Walk(w.dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.WithError(err).Errorf("Error walking file '%s'", path)
		} else if info.Mode().IsRegular() && !strings.HasSuffix(info.Name(), ".tmp") {
			files = append(files, info.Name())
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Error walking grib files")
		return nil
	}

	sort.Strings(files)

	forecasts := make(map[int][]string)

	for cpt, f := range files {
		date, err := fileDate(f)
		if err != nil {
			log.WithError(err).Errorf("Error parsing grib file name '%s'", f)
			continue
		}

		forecastHour := int(math.Round(date.Sub(time.Now()).Hours()))

		// keep one stale forecast so the present is always covered
		if forecastHour < -3 && cpt < len(files)-1 {
			continue
		}

		_, found := forecasts[forecastHour]
		if !found || forecastHour >= 0 {
			forecasts[forecastHour] = append(forecasts[forecastHour], f)
		}
	}

	var keys []int
	for k := range forecasts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		for _, file := range forecasts[k] {
			date, _ := fileDate(file)
			sdate := date.Format("2006010215")

			gs, found := w.winds[sdate]
			if found && (len(gs) == 2 || gs[0].File == file) {
				continue
			}

			wind, current, err := Init(w.dir, date, file)
			if err != nil {
				log.WithError(err).Errorf("Error loading grib file '%s'", file)
				continue
			}
			if wind.complete() {
				log.Debugf("Init wind %s %s", sdate, wind.File)
				w.winds[sdate] = append(w.winds[sdate], &wind)
			}
			if current.complete() {
				log.Debugf("Init current %s %s", sdate, current.File)
				w.currents[sdate] = append(w.currents[sdate], &current)
			}
		}
	}

	return nil
}

// fileDate resolves <yyyymmddhh>.f<hhh> into the forecast's valid time.
func fileDate(f string) (time.Time, error) {
	parts := strings.Split(f, ".")
	if len(parts) != 2 || len(parts[1]) < 2 {
		return time.Time{}, fmt.Errorf("unexpected file name '%s'", f)
	}
	h, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("2006010215", parts[0])
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Hour * time.Duration(h)), nil
}
