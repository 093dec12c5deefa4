// Package config loads the server settings and the default boat profile
// from an optional yaml file, with sane defaults when none exists.
package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Grib    GribConfig    `mapstructure:"grib"`
	Storage StorageConfig `mapstructure:"storage"`
	Sim     SimConfig     `mapstructure:"sim"`
	Boat    BoatConfig    `mapstructure:"boat"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type GribConfig struct {
	Dir string `mapstructure:"dir"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"`
}

type SimConfig struct {
	StepHours     float64 `mapstructure:"stepHours"`
	MaxIterations int     `mapstructure:"maxIterations"`
	WindFactor    float64 `mapstructure:"windFactor"`
	Workers       int     `mapstructure:"workers"`
}

type BoatConfig struct {
	Name             string  `mapstructure:"name"`
	MinAngleOfAttack float64 `mapstructure:"minAngleOfAttack"`
	VelocityMean     float64 `mapstructure:"velocityMean"`
	VelocityStd      float64 `mapstructure:"velocityStd"`
	Draft            float64 `mapstructure:"draft"`
	Mass             float64 `mapstructure:"mass"`
	CargoMaxCapacity float64 `mapstructure:"cargoMaxCapacity"`
}

// Load reads the config file at path when given, else looks for
// sim-server.yaml next to the binary. A missing file yields defaults.
func Load(path string) (Config, error) {
	viper.SetDefault("server.port", 8889)
	viper.SetDefault("grib.dir", "grib-data")
	viper.SetDefault("storage.path", "")
	viper.SetDefault("sim.stepHours", 1.0)
	viper.SetDefault("sim.maxIterations", 10000)
	viper.SetDefault("sim.windFactor", 1.5)
	viper.SetDefault("sim.workers", 0)
	viper.SetDefault("boat.minAngleOfAttack", 50.0)

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("sim-server")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && path != "" {
			return Config{}, err
		}
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
