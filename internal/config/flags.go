package config

import (
	"flag"
	"os"

	"github.com/RomaniOSDev/17PaperRoost/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   vault database path
//	-l string   log level
//	-s bool     seed sample contracts into an empty vault
//
// os.Args is filtered with flagx.FilterArgs first so that -c/-config and
// any other flags are left alone.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-l", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the vault database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.SeedSamples, "s", cfg.SeedSamples, "seed an empty vault with sample contracts")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
