package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			mutate:  func(c *Config) { c.Backend = "" },
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			mutate:  func(c *Config) { c.Backend = "postgres" },
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "default config is valid",
			mutate: func(c *Config) {},
		},
		{
			name:   "empty DataDir is valid at config level",
			mutate: func(c *Config) { c.DataDir = "" },
		},
		{
			name:    "zero max width is rejected",
			mutate:  func(c *Config) { c.Image.MaxWidth = 0 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "quality above one is rejected",
			mutate:  func(c *Config) { c.Image.Quality = 1.5 },
			wantErr: ErrInvalidConfig,
		},
		{
			name:    "unknown log level is rejected",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: ErrInvalidConfig,
		},
		{
			name:   "empty log settings fall back to defaults",
			mutate: func(c *Config) { c.Log = LogConfig{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = "/tmp/data"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultImageConfig(t *testing.T) {
	img := DefaultImageConfig()
	assert.Equal(t, 800, img.MaxWidth)
	assert.Equal(t, 600, img.MaxHeight)
	assert.InDelta(t, 0.8, img.Quality, 1e-9)
	assert.Equal(t, int64(5*1024*1024), img.MaxBytes)
}
