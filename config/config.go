package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/wojtekolesinski/battleships-solo/bot"
)

const (
	EnvStrategy = "BATTLESHIPS_STRATEGY"
	EnvCPUDelay = "BATTLESHIPS_CPU_DELAY"
	EnvSeed     = "BATTLESHIPS_SEED"
	EnvReveal   = "BATTLESHIPS_REVEAL"
	EnvLogLevel = "BATTLESHIPS_LOG_LEVEL"
	EnvLogFile  = "BATTLESHIPS_LOG_FILE"

	DefaultEnvFile = ".env"
)

type Config struct {
	Strategy string
	CPUDelay time.Duration
	// Seed 0 seeds from the current time.
	Seed     int64
	Reveal   bool
	LogLevel string
	LogFile  string
}

func Default() Config {
	return Config{
		Strategy: bot.KindHunt,
		CPUDelay: time.Second,
		LogLevel: "info",
		LogFile:  "battleships.log",
	}
}

// Load reads envFile if it exists and then the process environment, which
// takes precedence.
func Load(envFile string) (Config, error) {
	values, err := godotenv.Read(envFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config.Load: %w", err)
		}
		values = map[string]string{}
	}

	cfg, err := parse(func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	})
	if err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func parse(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvStrategy); ok {
		cfg.Strategy = v
	}
	if v, ok := lookup(EnvCPUDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCPUDelay, err)
		}
		cfg.CPUDelay = d
	}
	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup(EnvReveal); ok {
		reveal, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvReveal, err)
		}
		cfg.Reveal = reveal
	}
	if v, ok := lookup(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = v
	}
	return cfg, nil
}

func (c Config) Validate() error {
	known := false
	for _, kind := range bot.Kinds() {
		if c.Strategy == kind {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("config.Validate: unknown strategy %q, want one of %v", c.Strategy, bot.Kinds())
	}
	if c.CPUDelay < 0 {
		return fmt.Errorf("config.Validate: negative cpu delay %s", c.CPUDelay)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config.Validate: %w", err)
	}
	return nil
}
