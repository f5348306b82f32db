package config

import "time"

// Config holds runtime settings for the PaperRoost CLI.
//
// Fields:
//   - DatabasePath: SQLite file holding the vault.
//   - LogLevel, LogFormat: passed to logging.New.
//   - SeedSamples: fill an empty vault with sample contracts on start.
//   - Biometry: simulated biometric hardware (none, fingerprint, face).
//   - MaxPINAttempts, PINLockout: PIN throttling; 0 attempts disables it.
type Config struct {
	DatabasePath   string
	LogLevel       string
	LogFormat      string
	SeedSamples    bool
	Biometry       string
	MaxPINAttempts int
	PINLockout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "paperroost.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SeedSamples = true
	c.Biometry = "none"
	c.MaxPINAttempts = 0
	c.PINLockout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// environment, the config file and command-line flags. Later sources take
// precedence over earlier ones. Malformed input panics; this only runs at
// process start.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, dotenvFile)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
