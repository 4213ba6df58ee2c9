package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration, read from appsettings.json
// with environment overrides. The dashboard has no meaningful degraded
// mode, so a malformed file is a startup error; a missing file falls back
// to the defaults.
type Config struct {
	Port         string `mapstructure:"port"`
	DBPath       string `mapstructure:"db_path"`
	AssetsDir    string `mapstructure:"assets_dir"`
	RealtimeURL  string `mapstructure:"realtime_url"` // optional link to the live-data server
	LoadTimeoutS int    `mapstructure:"load_timeout_s"`
}

const (
	DefaultPort         = ":8050"
	DefaultDBPath       = "./data/tasks.db"
	DefaultAssetsDir    = "./assets"
	DefaultLoadTimeoutS = 30
)

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("port", DefaultPort)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("assets_dir", DefaultAssetsDir)
	v.SetDefault("load_timeout_s", DefaultLoadTimeoutS)

	v.SetEnvPrefix("DASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Accept a bare port number in the file.
	if cfg.Port != "" && !strings.HasPrefix(cfg.Port, ":") {
		cfg.Port = ":" + cfg.Port
	}

	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return errors.New("config: port must not be empty")
	}
	if cfg.DBPath == "" {
		return errors.New("config: db_path must not be empty")
	}
	if cfg.LoadTimeoutS <= 0 {
		return errors.New("config: load_timeout_s must be positive")
	}
	return nil
}
