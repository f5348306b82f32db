package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	dotenvFile = ".env"

	envDatabasePath   = "PAPERROOST_DB"
	envLogLevel       = "PAPERROOST_LOG_LEVEL"
	envLogFormat      = "PAPERROOST_LOG_FORMAT"
	envSeedSamples    = "PAPERROOST_SEED"
	envBiometry       = "PAPERROOST_BIOMETRY"
	envMaxPINAttempts = "PAPERROOST_MAX_PIN_ATTEMPTS"
	envPINLockout     = "PAPERROOST_PIN_LOCKOUT"
)

// parseEnv overlays cfg with PAPERROOST_* variables taken from the process
// environment or, failing that, from the dotenv file at path. A missing
// dotenv file is not an error.
func parseEnv(cfg *Config, path string) {
	dotenv, err := godotenv.Read(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if v, ok := lookup(envDatabasePath); ok {
		cfg.DatabasePath = v
	}
	if v, ok := lookup(envLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(envLogFormat); ok {
		cfg.LogFormat = v
	}
	if v, ok := lookup(envBiometry); ok {
		cfg.Biometry = v
	}
	if v, ok := lookup(envSeedSamples); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.SeedSamples = b
	}
	if v, ok := lookup(envMaxPINAttempts); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		cfg.MaxPINAttempts = n
	}
	if v, ok := lookup(envPINLockout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.PINLockout = d
	}
}
