// Package paths resolves the configuration directory and the data file
// location for the insurapro CLI.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Default file names, relative to the working directory.
const (
	DefaultCSVFileName    = "crm_data.csv"
	DefaultSQLiteFileName = "crm_data.db"
	DefaultJSONLFileName  = "crm_data.jsonl"
)

// Environment variable names for location overrides.
const (
	EnvConfigDir = "INSURAPRO_CONFIG_DIR"
	EnvDataFile  = "INSURAPRO_DATA_FILE"
)

const appName = "insurapro"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/insurapro (fallback ~/.config/insurapro)
// macOS:   ~/Library/Application Support/insurapro
// Windows: %APPDATA%/insurapro
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// DefaultDataFileName returns the conventional file name for a backend.
func DefaultDataFileName(backend string) string {
	switch backend {
	case types.BackendSQLite:
		return DefaultSQLiteFileName
	case types.BackendJSONL:
		return DefaultJSONLFileName
	default:
		return DefaultCSVFileName
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > INSURAPRO_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataFile returns the data file path following the precedence
// chain: flag > configYAMLValue > INSURAPRO_DATA_FILE env > the backend's
// default file name in the working directory.
func ResolveDataFile(flag, configYAMLValue, backend string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataFile); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataFileName(backend)), nil
}
