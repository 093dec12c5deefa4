package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/peterbourgon/ff"
	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/sim-server/api"
	"github.com/a-bouts/sim-server/config"
	"github.com/a-bouts/sim-server/storage"
	"github.com/a-bouts/sim-server/wind"
	"github.com/a-bouts/sim-server/xmpp"

	_ "net/http/pprof"
)

func main() {

	fs := flag.NewFlagSet("sim-server", flag.ExitOnError)
	var (
		configFile   = fs.String("config", "", "config file")
		port         = fs.Int("port", 0, "http port, overrides config")
		gribDir      = fs.String("grib-dir", "", "grib files directory, overrides config")
		dbPath       = fs.String("db", "", "sqlite voyage database path, overrides config")
		xmppHost     = fs.String("xmpp-host", "", "")
		xmppJid      = fs.String("xmpp-jid", "", "")
		xmppPassword = fs.String("xmpp-password", "", "")
		xmppTo       = fs.String("xmpp-to", "", "")
		cpuprofile   = fs.Bool("cpuprofile", false, "profile run requests")
		debug        = fs.Bool("debug", false, "debug logs")
	)
	ff.Parse(fs, os.Args[1:], ff.WithEnvVarNoPrefix())

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.WithError(err).Fatal("Error loading config")
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *gribDir != "" {
		cfg.Grib.Dir = *gribDir
	}
	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	x := &xmpp.Xmpp{Config: xmpp.Config{Host: *xmppHost, Jid: *xmppJid, Password: *xmppPassword, To: *xmppTo}}

	log.Infof("Load winds from '%s'", cfg.Grib.Dir)
	winds := wind.InitWinds(cfg.Grib.Dir)

	var store *storage.Store
	if cfg.Storage.Path != "" {
		log.Infof("Open voyage store '%s'", cfg.Storage.Path)
		store, err = storage.Open(cfg.Storage.Path)
		if err != nil {
			log.WithError(err).Fatal("Error opening voyage store")
		}
	}

	router := api.InitServer(*cpuprofile, winds, x, store, cfg.Sim)

	log.Infof("Start server on :%d", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", cfg.Server.Port),
		handlers.CombinedLoggingHandler(os.Stdout, router)))
}
