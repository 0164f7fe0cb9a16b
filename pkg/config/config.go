// Package config loads the optional .calrem.yaml from the working
// directory. Every setting has a default, so the file may be absent.
package config

import (
	"fmt"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Config struct {
	// DataDir holds reminders.json and the id counter.
	DataDir string
	// PollInterval is how often due reminders are checked.
	PollInterval time.Duration
	// Verbose enables debug logging.
	Verbose bool
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", "./reminders")
	v.SetDefault("poll_interval", "60s")
	v.SetDefault("verbose", false)
	v.SetConfigName(".calrem") // .yaml is implicit
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	dataDir, err := homedir.Expand(v.GetString("data_dir"))
	if err != nil {
		return nil, fmt.Errorf("expand data_dir: %w", err)
	}

	interval := v.GetDuration("poll_interval")
	if interval <= 0 {
		interval = 60 * time.Second
	}

	return &Config{
		DataDir:      dataDir,
		PollInterval: interval,
		Verbose:      v.GetBool("verbose"),
	}, nil
}
