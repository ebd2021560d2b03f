// Package config loads server settings from defaults, CHESS_* environment
// variables and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Host         string        `validate:"required"`
	Port         int           `validate:"min=1,max=65535"`
	AllowOrigins string        `validate:"required"`
	ClockTime    time.Duration `validate:"min=0"`
	MaxGames     int           `validate:"min=0"`
	RateLimit    int           `validate:"min=0"`
	Dev          bool
}

func Default() Config {
	return Config{
		Host:         "localhost",
		Port:         3000,
		AllowOrigins: "http://localhost:5173",
		ClockTime:    10 * time.Minute,
		MaxGames:     1000,
		RateLimit:    10,
	}
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load builds a Config for the given command-line arguments (without the
// program name).
func Load(args []string) (Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("chess-server", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "server host")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "server port")
	fs.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma separated CORS origins")
	fs.DurationVar(&cfg.ClockTime, "clock", cfg.ClockTime, "time per side, 0 disables clocks")
	fs.IntVar(&cfg.MaxGames, "max-games", cfg.MaxGames, "maximum concurrent games, 0 for no limit")
	fs.IntVar(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "API requests per second per IP, 0 disables")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development mode (relaxed rate limits)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("CHESS_HOST"); ok {
		c.Host = v
	}
	if v, ok := lookup("CHESS_ORIGINS"); ok {
		c.AllowOrigins = v
	}
	ints := map[string]*int{
		"CHESS_PORT":       &c.Port,
		"CHESS_MAX_GAMES":  &c.MaxGames,
		"CHESS_RATE_LIMIT": &c.RateLimit,
	}
	for key, dst := range ints {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	if v, ok := lookup("CHESS_CLOCK"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CHESS_CLOCK: %w", err)
		}
		c.ClockTime = d
	}
	if v, ok := lookup("CHESS_DEV"); ok {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHESS_DEV: %w", err)
		}
		c.Dev = dev
	}
	return nil
}
