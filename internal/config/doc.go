// Package config loads runtime configuration for the PaperRoost terminal app.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and PAPERROOST_* environment
//     variables; real environment variables win over .env entries.
//  3. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path of the vault database file
//	-l string   log level (debug, info, warn, error)
//	-s bool     seed an empty vault with sample contracts
//
// Environment
//
//	PAPERROOST_DB                 database path
//	PAPERROOST_LOG_LEVEL          log level
//	PAPERROOST_LOG_FORMAT         text or json
//	PAPERROOST_SEED               true/false
//	PAPERROOST_BIOMETRY           none, fingerprint or face
//	PAPERROOST_MAX_PIN_ATTEMPTS   wrong PINs before a lockout (0 = unlimited)
//	PAPERROOST_PIN_LOCKOUT        lockout duration, e.g. "30s"
//
// # File schema
//
// Durations use timex.Duration, so they may be strings like "30s" or integer
// nanoseconds. Keys left out of the file keep their earlier value:
//
//	{
//	  "database_path": "vault.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "seed_samples": true,
//	  "biometry": "none",
//	  "max_pin_attempts": 5,
//	  "pin_lockout": "30s"
//	}
package config
