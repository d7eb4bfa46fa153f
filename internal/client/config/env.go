package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "MECHANIC_"

// parseEnv overlays cfg with MECHANIC_* variables. Values from envFile are
// used only for keys lookup does not know. A missing envFile is ignored.
func parseEnv(cfg *Config, lookup func(string) (string, bool), envFile string) error {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	get := func(name string) (string, bool) {
		key := envPrefix + name
		if lookup != nil {
			if v, ok := lookup(key); ok {
				return v, true
			}
		}
		v, ok := fileVars[key]
		return v, ok
	}

	str := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}
	str("API_URL", &cfg.APIBaseURL)
	str("DB_PATH", &cfg.DBPath)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)
	str("SENTRY_DSN", &cfg.SentryDSN)
	str("ENV", &cfg.Environment)
	str("STORE_KEY", &cfg.StoreKey)

	if v, ok := get("TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := get("SHARED_REFRESH"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sSHARED_REFRESH: %w", envPrefix, err)
		}
		cfg.SharedRefresh = b
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"BASE_FARE", &cfg.BaseFare},
		{"PER_KM_RATE", &cfg.PerKmRate},
	}
	for _, f := range floats {
		if v, ok := get(f.name); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, f.name, err)
			}
			*f.dst = n
		}
	}

	for name, dst := range map[string]**float64{"LAT": &cfg.Latitude, "LNG": &cfg.Longitude} {
		if v, ok := get(name); ok {
			n, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", envPrefix, name, err)
			}
			*dst = &n
		}
	}
	return nil
}
