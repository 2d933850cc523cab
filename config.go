package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"shape-simplifier/simplify"
)

// Config holds the service settings. Values come from the environment, with
// an optional .env file in the working directory.
type Config struct {
	Addr          string
	BoundaryDir   string
	Strategy      string  // tolerance strategy used when a request names none
	BaseTolerance float64 // base tolerance handed to the strategy
	Zoom          float64 // zoom assumed when a request has none
	Precision     int
	Quiet         bool
}

func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		Addr:          envOr("ADDR", ":8080"),
		BoundaryDir:   envOr("BOUNDARY_DIR", "boundaries"),
		Strategy:      envOr("TOLERANCE_STRATEGY", "density"),
		BaseTolerance: simplify.DefaultBaseTolerance,
		Zoom:          simplify.DefaultMaxZoom,
		Precision:     simplify.DefaultPrecision,
	}

	var err error
	if v := os.Getenv("DEFAULT_TOLERANCE"); v != "" {
		if cfg.BaseTolerance, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, errors.Wrap(err, "DEFAULT_TOLERANCE")
		}
	}
	if v := os.Getenv("DEFAULT_ZOOM"); v != "" {
		if cfg.Zoom, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, errors.Wrap(err, "DEFAULT_ZOOM")
		}
	}
	if v := os.Getenv("DEFAULT_PRECISION"); v != "" {
		if cfg.Precision, err = strconv.Atoi(v); err != nil {
			return Config{}, errors.Wrap(err, "DEFAULT_PRECISION")
		}
	}
	if v := os.Getenv("LOG_QUIET"); v != "" {
		if cfg.Quiet, err = strconv.ParseBool(v); err != nil {
			return Config{}, errors.Wrap(err, "LOG_QUIET")
		}
	}

	if cfg.BaseTolerance < 0 {
		return Config{}, errors.Errorf("DEFAULT_TOLERANCE must not be negative, got %g", cfg.BaseTolerance)
	}
	if cfg.Precision < 1 || cfg.Precision > 15 {
		return Config{}, errors.Errorf("DEFAULT_PRECISION must be within [1, 15], got %d", cfg.Precision)
	}
	if _, err := simplify.StrategyByName(cfg.Strategy, cfg.BaseTolerance); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Pipeline returns the pipeline used for boundaries loaded at startup and
// for requests that do not override anything.
func (c Config) Pipeline() (simplify.Pipeline, error) {
	strategy, err := simplify.StrategyByName(c.Strategy, c.BaseTolerance)
	if err != nil {
		return simplify.Pipeline{}, errors.Wrap(err, "TOLERANCE_STRATEGY")
	}
	return simplify.Pipeline{Strategy: strategy, Precision: c.Precision}, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
