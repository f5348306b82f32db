package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RomaniOSDev/17PaperRoost/internal/flagx"
	"github.com/RomaniOSDev/17PaperRoost/internal/timex"
)

// fileConfig is a DTO used only for decoding config files. Pointer fields
// tell a missing key apart from a zero value.
type fileConfig struct {
	DatabasePath   *string         `json:"database_path" yaml:"database_path"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
	LogFormat      *string         `json:"log_format" yaml:"log_format"`
	SeedSamples    *bool           `json:"seed_samples" yaml:"seed_samples"`
	Biometry       *string         `json:"biometry" yaml:"biometry"`
	MaxPINAttempts *int            `json:"max_pin_attempts" yaml:"max_pin_attempts"`
	PINLockout     *timex.Duration `json:"pin_lockout" yaml:"pin_lockout"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
// Panics on read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
	if fc.SeedSamples != nil {
		cfg.SeedSamples = *fc.SeedSamples
	}
	if fc.Biometry != nil {
		cfg.Biometry = *fc.Biometry
	}
	if fc.MaxPINAttempts != nil {
		cfg.MaxPINAttempts = *fc.MaxPINAttempts
	}
	if fc.PINLockout != nil {
		cfg.PINLockout = fc.PINLockout.Duration
	}
}
