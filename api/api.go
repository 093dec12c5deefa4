package api

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/sim-server/api/model"
	"github.com/a-bouts/sim-server/config"
	"github.com/a-bouts/sim-server/latlon"
	"github.com/a-bouts/sim-server/metrics"
	"github.com/a-bouts/sim-server/shiplog"
	"github.com/a-bouts/sim-server/sim"
	"github.com/a-bouts/sim-server/storage"
	"github.com/a-bouts/sim-server/wind"
	"github.com/a-bouts/sim-server/xmpp"
)

type server struct {
	cpuprofile bool
	provider   wind.Provider
	x          *xmpp.Xmpp
	store      *storage.Store
	defaults   config.SimConfig
}

func InitServer(cpuprofile bool, provider wind.Provider, x *xmpp.Xmpp, store *storage.Store, defaults config.SimConfig) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{
		cpuprofile: cpuprofile,
		provider:   provider,
		x:          x,
		store:      store,
		defaults:   defaults,
	}

	api := router.PathPrefix("/").Subrouter()

	api.HandleFunc("/sim/-/healthz", s.healthz).Methods(http.MethodGet)
	api.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	apiV1 := router.PathPrefix("/sim/api/v1").Subrouter()
	apiV1.HandleFunc("/run", s.run).Methods("POST")
	apiV1.HandleFunc("/ensemble", s.ensemble).Methods("POST")
	apiV1.HandleFunc("/wind/{lat}/{lon}", s.wind).Methods("GET")
	apiV1.HandleFunc("/voyages", s.voyages).Methods("GET")

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func (s *server) wind(w http.ResponseWriter, r *http.Request) {
	lat, err := strconv.ParseFloat(mux.Vars(r)["lat"], 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(mux.Vars(r)["lon"], 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	at := time.Now()
	if t := r.URL.Query().Get("time"); t != "" {
		if at, err = time.Parse(time.RFC3339, t); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	p := latlon.New(lat, lon)

	type windResult struct {
		Wind    float64 `json:"wind"`
		Speed   float64 `json:"speed"`
		Current float64 `json:"current,omitempty"`
		Drift   float64 `json:"drift,omitempty"`
	}

	wv, err := s.provider.WindAt(p, at)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	var res windResult
	res.Wind = wv.Angle
	res.Speed = wv.Magnitude * 1.9438444924406

	if cv, ok, _ := s.provider.CurrentAt(p, at); ok {
		res.Current = cv.Angle
		res.Drift = cv.Magnitude * 1.9438444924406
	}

	log.Infof("Wind (%f,%f) : %.1f° %.1f kt", lat, lon, res.Wind, res.Speed)

	json.NewEncoder(w).Encode(res)
}

func (s *server) model(params model.Params) (sim.VelocityModel, error) {
	switch params.Method {
	case "", "const":
		return sim.ConstantMean{}, nil
	case "meanstd":
		seed := params.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return sim.MeanStd{Rand: sim.NewRand(seed)}, nil
	case "weather":
		k := params.WindFactor
		if k == 0 {
			k = s.defaults.WindFactor
		}
		return sim.WeatherDriven{Provider: s.provider, K: k}, nil
	}
	return nil, fmt.Errorf("unknown method '%s'", params.Method)
}

func (s *server) simulation(r model.Run) (*sim.Simulation, error) {
	m, err := s.model(r.Params)
	if err != nil {
		return nil, err
	}

	stepHours := r.Params.StepHours
	if stepHours <= 0 {
		stepHours = s.defaults.StepHours
	}
	maxIterations := r.Params.MaxIterations
	if maxIterations <= 0 {
		maxIterations = s.defaults.MaxIterations
	}

	return &sim.Simulation{
		Model:         m,
		Start:         r.StartTime,
		Step:          time.Duration(stepHours * float64(time.Hour)),
		MaxIterations: maxIterations,
	}, nil
}

func (s *server) run(w http.ResponseWriter, req *http.Request) {
	if s.cpuprofile {
		defer profile.Start().Stop()
	}

	fields := log.Fields{
		"action": "run",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	var r model.Run
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	simulation, err := s.simulation(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	requestLogger.Infof("Run '%s' '%s' from '%s' every %s, %d iterations max",
		r.Boat.Name, r.Params.Method, r.StartTime.String(), simulation.Step, simulation.MaxIterations)

	b := r.Boat
	b.Plan = r.Plan

	start := time.Now()
	res, err := simulation.Run(&b)
	delta := time.Now().Sub(start)

	if err != nil {
		requestLogger.WithError(err).Error("Run failed")
		s.notify(fmt.Sprintf("Voyage '%s' failed: %v", b.Name, err))
		if res == nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// partial log, report it with the error
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(res)
		return
	}

	requestLogger.Infof("Run took %s (%d iterations, %s)", delta.String(), res.Iterations, res.Status)
	metrics.ObserveRun(r.Params.Method, res.Status.String(), res.Iterations, delta)
	s.notify(fmt.Sprintf("Voyage '%s' %s after %d iterations", b.Name, res.Status, res.Iterations))

	if s.store != nil && r.Params.Persist {
		if _, err := s.store.SaveVoyage(&b, res); err != nil {
			requestLogger.WithError(err).Error("Error saving voyage")
		}
	}

	if strings.Contains(req.Header.Get("Accept"), "text/csv") {
		w.Header().Set("Content-Type", "text/csv")
		if err := shiplog.Write(w, res.Log); err != nil {
			requestLogger.WithError(err).Error("Error writing ship log")
		}
		return
	}

	json.NewEncoder(w).Encode(res)
}

func (s *server) ensemble(w http.ResponseWriter, req *http.Request) {

	fields := log.Fields{
		"action": "ensemble",
	}
	if ip, err := getIp(req); err == nil {
		fields["IP"] = ip
	}
	requestLogger := log.WithFields(fields)

	var r model.Run
	if err := json.NewDecoder(req.Body).Decode(&r); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(r.StartTimes) == 0 {
		http.Error(w, "missing startTimes", http.StatusBadRequest)
		return
	}

	simulation, err := s.simulation(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	workers := r.Params.Workers
	if workers <= 0 {
		workers = s.defaults.Workers
	}

	requestLogger.Infof("Ensemble '%s' '%s', %d starts", r.Boat.Name, r.Params.Method, len(r.StartTimes))

	proto := r.Boat
	proto.Plan = r.Plan

	start := time.Now()
	results, err := simulation.RunEnsemble(req.Context(), proto, r.StartTimes, workers)
	delta := time.Now().Sub(start)

	if err != nil {
		requestLogger.WithError(err).Error("Ensemble failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	requestLogger.Infof("Ensemble took %s", delta.String())
	for _, res := range results {
		metrics.ObserveRun(r.Params.Method, res.Status.String(), res.Iterations, delta)
	}

	type ensembleResult struct {
		Results []*sim.Result   `json:"results"`
		Stats   []shiplog.Stats `json:"stats"`
	}

	out := ensembleResult{Results: results, Stats: make([]shiplog.Stats, len(results))}
	for i, res := range results {
		out.Stats[i] = shiplog.Evaluate(res.Log, 0)
	}

	json.NewEncoder(w).Encode(out)
}

func (s *server) voyages(w http.ResponseWriter, req *http.Request) {
	if s.store == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	voyages, err := s.store.Voyages()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(voyages)
}

func (s *server) notify(message string) {
	if s.x == nil {
		return
	}
	go func() {
		if err := s.x.Send(message); err != nil {
			log.WithError(err).Debug("Error sending xmpp notification")
		}
	}()
}

func getIp(r *http.Request) (string, error) {
	//Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}

	//Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP := net.ParseIP(ip)
		if netIP != nil {
			return ip, nil
		}
	}

	//Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip, nil
	}
	return "", fmt.Errorf("No valid ip found")
}
