package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mechanicassist/internal/flagx"
	"github.com/dmitrijs2005/mechanicassist/internal/timex"
)

// JsonConfig is the on-disk form. Absent keys leave the current value.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	DBPath         *string         `json:"db_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`
	LogFormat      *string         `json:"log_format"`
	SentryDSN      *string         `json:"sentry_dsn"`
	Environment    *string         `json:"environment"`
	SharedRefresh  *bool           `json:"shared_refresh"`
	StoreKey       *string         `json:"store_key"`
	BaseFare       *float64        `json:"base_fare"`
	PerKmRate      *float64        `json:"per_km_rate"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// parseJson overlays cfg with the file named by -c/-config in args, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	setIf(&cfg.DBPath, jc.DBPath)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
	setIf(&cfg.SentryDSN, jc.SentryDSN)
	setIf(&cfg.Environment, jc.Environment)
	setIf(&cfg.SharedRefresh, jc.SharedRefresh)
	setIf(&cfg.StoreKey, jc.StoreKey)
	setIf(&cfg.BaseFare, jc.BaseFare)
	setIf(&cfg.PerKmRate, jc.PerKmRate)
	if jc.Latitude != nil {
		cfg.Latitude = jc.Latitude
	}
	if jc.Longitude != nil {
		cfg.Longitude = jc.Longitude
	}
	return nil
}
