// Package config loads runtime configuration for the mechanic dispatch CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and MECHANIC_* environment
//     variables; a variable set in the environment beats the same key in .env.
//  3. An optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Flags
//
//	-a string   backend API base URL, e.g. http://10.0.2.2:8000/api
//	-d string   path of the local SQLite database
//	-t int      request timeout in seconds
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Every key is optional. Durations are strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "http://10.0.2.2:8000/api",
//	  "db_path": "mechanicassist.db",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "sentry_dsn": "",
//	  "environment": "development",
//	  "shared_refresh": false,
//	  "store_key": "",
//	  "base_fare": 100,
//	  "per_km_rate": 10,
//	  "latitude": 12.97,
//	  "longitude": 77.59
//	}
package config
