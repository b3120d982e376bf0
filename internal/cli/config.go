package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/avioncards/internal/paths"
	"github.com/mesh-intelligence/avioncards/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "AVIONCARDS"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyImageMaxWidth  = "image.max_width"
	cfgKeyImageMaxHeight = "image.max_height"
	cfgKeyImageQuality   = "image.quality"
	cfgKeyImageMaxBytes  = "image.max_bytes"
	cfgKeyLogLevel       = "log.level"
	cfgKeyLogFormat      = "log.format"
)

// envKeys can be overridden by AVIONCARDS_<KEY> variables. data_dir is
// resolved separately so that config.yaml keeps precedence over the
// environment.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyImageMaxWidth,
	cfgKeyImageMaxHeight,
	cfgKeyImageQuality,
	cfgKeyImageMaxBytes,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
}

// newViper returns a Viper instance reading config.yaml from configDir,
// with defaults and environment overrides registered.
func newViper(configDir string) (*viper.Viper, error) {
	def := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyImageMaxWidth, def.Image.MaxWidth)
	v.SetDefault(cfgKeyImageMaxHeight, def.Image.MaxHeight)
	v.SetDefault(cfgKeyImageQuality, def.Image.Quality)
	v.SetDefault(cfgKeyImageMaxBytes, def.Image.MaxBytes)
	v.SetDefault(cfgKeyLogLevel, def.Log.Level)
	v.SetDefault(cfgKeyLogFormat, def.Log.Format)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Missing config.yaml is not an error.
	}
	return v, nil
}

// loadConfig resolves the directories, reads config.yaml and applies the
// global flags. The result is validated.
func loadConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := newViper(configDir)
	if err != nil {
		return types.Config{}, err
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.DataDir, err = paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, types.NewValidationErrorCause("config", err)
	}
	return cfg, nil
}
