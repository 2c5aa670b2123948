package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/insurapro/pkg/types"
)

const (
	configFileExt = "config.yaml"

	cfgKeyBackend  = "backend"
	cfgKeyDataFile = "data_file"

	// envBackend overrides the backend key of config.yaml.
	envBackend = "INSURAPRO_BACKEND"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# InsuraPro CLI configuration

# Storage backend: csv, sqlite or jsonl (INSURAPRO_BACKEND overrides)
backend: csv

# Data file (optional; overridable by --data-file flag)
# data_file:
`

// loadConfig returns a Viper instance for configDir/config.yaml. On first
// run the directory and a commented default file are created. The backend
// key falls back to INSURAPRO_BACKEND, then to csv.
func loadConfig(configDir string) (*viper.Viper, error) {
	path := filepath.Join(configDir, configFileExt)
	if err := seedConfig(path); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendCSV)
	if err := v.BindEnv(cfgKeyBackend, envBackend); err != nil {
		return nil, fmt.Errorf("bind %s: %w", envBackend, err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return v, nil
}

// seedConfig writes defaultConfigYAML to path unless a file is already
// there.
func seedConfig(path string) error {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigYAML), 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
