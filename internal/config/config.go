package config

import (
	"os"
	"showdown-server/internal/util"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the showdown server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	// MaxHandsPerRound caps the number of hands a single round accepts
	MaxHandsPerRound int `yaml:"maxHandsPerRound" envconfig:"max_hands_per_round"`
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// A missing config file is fine; the environment alone can configure the server
func Load() error {
	config = Config{
		MaxHandsPerRound: 10,
	}

	configFile := util.Getenv("SD_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("sd", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
