package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds backend selection and parameters for Store.Attach, plus the
// image and logging settings of the services built on top of it.
type Config struct {
	Backend string      `mapstructure:"backend" yaml:"backend"`
	DataDir string      `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Image   ImageConfig `mapstructure:"image" yaml:"image"`
	Log     LogConfig   `mapstructure:"log" yaml:"log"`
}

// ImageConfig bounds the stored form of uploaded images.
type ImageConfig struct {
	MaxWidth  int     `mapstructure:"max_width" yaml:"max_width" validate:"gt=0"`
	MaxHeight int     `mapstructure:"max_height" yaml:"max_height" validate:"gt=0"`
	Quality   float64 `mapstructure:"quality" yaml:"quality" validate:"gt=0,lte=1"`
	MaxBytes  int64   `mapstructure:"max_bytes" yaml:"max_bytes" validate:"gt=0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=text json"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Image defaults.
const (
	DefaultMaxWidth  = 800
	DefaultMaxHeight = 600
	DefaultQuality   = 0.8
	DefaultMaxBytes  = 5 << 20
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns a sqlite configuration with default image bounds.
// DataDir is left empty; callers resolve it.
func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		Image:   DefaultImageConfig(),
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// DefaultImageConfig returns the default image bounds: 800x600, quality
// 0.8, 5 MiB input ceiling.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		MaxWidth:  DefaultMaxWidth,
		MaxHeight: DefaultMaxHeight,
		Quality:   DefaultQuality,
		MaxBytes:  DefaultMaxBytes,
	}
}

// Validate checks that the Config is well-formed. Backend problems return
// ErrBackendEmpty or ErrBackendUnknown; field constraint failures wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
