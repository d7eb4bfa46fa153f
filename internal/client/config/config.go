package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	APIBaseURL     string
	DBPath         string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
	SentryDSN      string
	Environment    string
	SharedRefresh  bool
	StoreKey       string
	BaseFare       float64
	PerKmRate      float64
	// Latitude and Longitude are the device position used by the request
	// flow. Both nil means the position is unknown until set in the CLI.
	Latitude  *float64
	Longitude *float64
}

const DefaultAPIBaseURL = "http://10.0.2.2:8000/api"

func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DBPath = "mechanicassist.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.Environment = "development"
	c.BaseFare = 100
	c.PerKmRate = 10
}

// HasLocation reports whether a device position is configured.
func (c *Config) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Load builds a Config from defaults, envFile plus lookupEnv, the JSON file
// named in args, then the flags in args.
func Load(args []string, lookupEnv func(string) (string, bool), envFile string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, lookupEnv, envFile); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

// LoadConfig loads from the process arguments, environment and ./.env.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.LookupEnv, ".env")
}
