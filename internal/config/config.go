package config

import (
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config is read from FOODINDEX_* environment variables.
type Config struct {
	Addr          string `env:"FOODINDEX_ADDR" envDefault:":8080"`
	SubindexPath  string `env:"FOODINDEX_SUBINDEX_PATH" envDefault:"daily_detailed_subindices.csv"`
	MainIndexPath string `env:"FOODINDEX_MAININDEX_PATH" envDefault:"daily_mainindices.csv"`
	Delimiter     string `env:"FOODINDEX_DELIMITER" envDefault:","`

	LogFormat string `env:"FOODINDEX_LOG_FORMAT" envDefault:"auto"`
	LogLevel  string `env:"FOODINDEX_LOG_LEVEL" envDefault:"info"`

	SessionCapacity int           `env:"FOODINDEX_SESSION_CAPACITY" envDefault:"1024"`
	SessionTTL      time.Duration `env:"FOODINDEX_SESSION_TTL" envDefault:"12h"`

	// RateLimit is requests per second per client, 0 disables it.
	RateLimit       float64       `env:"FOODINDEX_RATE_LIMIT" envDefault:"20"`
	ShutdownTimeout time.Duration `env:"FOODINDEX_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse env")
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return errors.Newf("FOODINDEX_DELIMITER must be a single character, got %q", c.Delimiter)
	}
	if c.SessionCapacity <= 0 {
		return errors.Newf("FOODINDEX_SESSION_CAPACITY must be positive, got %d", c.SessionCapacity)
	}
	if c.SessionTTL <= 0 {
		return errors.Newf("FOODINDEX_SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.RateLimit < 0 {
		return errors.Newf("FOODINDEX_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return errors.Newf("FOODINDEX_LOG_FORMAT must be auto, text or json, got %q", c.LogFormat)
	}
	return nil
}

// DelimiterRune returns the field separator of the input files.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
