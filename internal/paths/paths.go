// Package paths locates the avioncards config and data directories.
//
// The config dir holds config.yaml and is chosen by --config-dir, then
// AVIONCARDS_CONFIG_DIR, then the platform default. The data dir holds
// avioncards.db and is chosen by --data-dir, then data_dir in config.yaml,
// then AVIONCARDS_DATA_DIR, then the platform default. Every explicit
// choice is returned as an absolute path.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is appended to the platform roots.
const AppDirName = "avioncards"

const (
	EnvConfigDir = "AVIONCARDS_CONFIG_DIR"
	EnvDataDir   = "AVIONCARDS_DATA_DIR"
)

// platformDir is swapped in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir is where config.yaml lives when nothing overrides it:
// $XDG_CONFIG_HOME/avioncards or ~/.config/avioncards on Linux, and
// os.UserConfigDir()/avioncards elsewhere.
func DefaultConfigDir() (string, error) {
	return platformAppDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir is where the database lives when nothing overrides it:
// $XDG_DATA_HOME/avioncards or ~/.local/share/avioncards on Linux. Other
// platforms keep data beside the config in os.UserConfigDir()/avioncards.
func DefaultDataDir() (string, error) {
	return platformAppDir("XDG_DATA_HOME", ".local", "share")
}

// platformAppDir applies the XDG rule on Linux: xdgVar if set, otherwise
// $HOME joined with homeRel.
func platformAppDir(xdgVar string, homeRel ...string) (string, error) {
	if runtime.GOOS != "linux" {
		root, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(root, AppDirName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, homeRel...), AppDirName)...), nil
}

// ResolveConfigDir picks the config dir: flag, AVIONCARDS_CONFIG_DIR, platform.
func ResolveConfigDir(flag string) (string, error) {
	return firstAbs(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir picks the data dir: flag, fileValue (data_dir from
// config.yaml), AVIONCARDS_DATA_DIR, platform.
func ResolveDataDir(flag, fileValue string) (string, error) {
	return firstAbs(DefaultDataDir, flag, fileValue, os.Getenv(EnvDataDir))
}

// firstAbs returns the first non-empty candidate made absolute, or the
// fallback when all are empty.
func firstAbs(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
