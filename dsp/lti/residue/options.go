package residue

import (
	"errors"
	"math"

	"github.com/ZOwl/signal-processing/dsp/poly"
	"github.com/go-logr/logr"
)

// DefaultTolerance is the default pole clustering distance.
const DefaultTolerance = 1e-3

// ErrInvalidTolerance is returned for a NaN or infinite clustering tolerance.
var ErrInvalidTolerance = errors.New("residue: tolerance must be finite")

// Config holds the settings of a decomposition.
type Config struct {
	// Tolerance is the distance below which roots of the denominator are
	// merged into one pole of higher multiplicity.
	Tolerance  float64
	RootFinder poly.RootFinder
	Logger     logr.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		Tolerance:  DefaultTolerance,
		RootFinder: poly.DefaultRootFinder,
		Logger:     logr.Discard(),
	}
}

// WithTolerance sets the pole clustering tolerance. Negative values use
// their magnitude.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = math.Abs(tol)
	}
}

// WithRootFinder replaces the denominator root finder.
func WithRootFinder(finder poly.RootFinder) Option {
	return func(cfg *Config) {
		if finder != nil {
			cfg.RootFinder = finder
		}
	}
}

// WithLogger sets the logger used for verbose diagnostics.
func WithLogger(logger logr.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

func applyOptions(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if math.IsNaN(cfg.Tolerance) || math.IsInf(cfg.Tolerance, 0) {
		return Config{}, ErrInvalidTolerance
	}

	return cfg, nil
}
