// Package cli owns everything user-facing: flag and environment parsing, the
// interactive game loop, protocol display ordering, and table rendering. No
// game or protocol logic lives here.
package cli

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the command configuration. Flags override environment
// variables.
type Config struct {
	// Workers sets the probability table worker count; 0 means all CPUs.
	Workers int `env:"FAIRDICE_WORKERS"`
	// Verbose enables protocol logging.
	Verbose bool `env:"FAIRDICE_VERBOSE"`
	// Receipt prints the hex-encoded game transcript on exit.
	Receipt bool `env:"FAIRDICE_RECEIPT"`
	// Verify holds a hex-encoded transcript to check instead of playing.
	Verify string

	// Dice holds the positional die arguments.
	Dice []string
}

// ParseConfig parses environment and flags into a Config. The remaining
// positional arguments are the dice.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "worker count for the probability table (0 = all CPUs)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "enable protocol logging")
	fs.BoolVar(&cfg.Receipt, "receipt", cfg.Receipt, "print the hex-encoded game transcript on exit")
	fs.StringVar(&cfg.Verify, "verify", "", "verify a hex-encoded transcript instead of playing")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg.Dice = fs.Args()
	return cfg, nil
}
