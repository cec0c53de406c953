package kmlnorm

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tsawler/kmlnorm/config"
)

// settings holds the configuration a Handle is loaded and processed with.
type settings struct {
	cfg    config.Config
	logger *zap.SugaredLogger

	// err is the first option failure; it is reported by the Handle
	err error
}

// defaultSettings returns the built-in configuration and a silent logger.
func defaultSettings() settings {
	return settings{
		cfg:    config.Default(),
		logger: zap.NewNop().Sugar(),
	}
}

// Option configures Load.
type Option func(*settings)

// WithConfig replaces the configuration. The config is validated; an invalid
// one makes the load fail with ErrInvalidConfig.
//
// Example:
//
//	cfg := config.Default()
//	cfg.DefaultFolderName = "Records"
//	h := kmlnorm.Load("track.kml", kmlnorm.WithConfig(cfg))
func WithConfig(cfg config.Config) Option {
	return func(s *settings) {
		if err := cfg.Validate(); err != nil {
			s.setErr(fmt.Errorf("%w: %w", ErrInvalidConfig, err))
			return
		}
		s.cfg = cfg
	}
}

// WithConfigFile loads the configuration from a YAML file.
//
// Example:
//
//	h := kmlnorm.Load("track.kml", kmlnorm.WithConfigFile("kmlnorm.yaml"))
func WithConfigFile(path string) Option {
	return func(s *settings) {
		cfg, err := config.Load(path)
		if err != nil {
			s.setErr(fmt.Errorf("%w: %w", ErrInvalidConfig, err))
			return
		}
		s.cfg = cfg
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOffset sets the zone offset used by Process for TIMESTAMP entries.
// It must be applied after WithConfig or WithConfigFile to take effect.
//
// Example:
//
//	h := kmlnorm.Load("track.kml", kmlnorm.WithOffset(-6*time.Hour))
func WithOffset(offset time.Duration) Option {
	return func(s *settings) {
		s.cfg.TimezoneOffset = config.Duration(offset)
		if err := s.cfg.Validate(); err != nil {
			s.setErr(fmt.Errorf("%w: %w", ErrInvalidConfig, err))
		}
	}
}

func (s *settings) setErr(err error) {
	if s.err == nil {
		s.err = err
	}
}
