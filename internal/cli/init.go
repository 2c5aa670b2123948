package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/internal/paths"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend  string `yaml:"backend"`
	DataFile string `yaml:"data_file,omitempty"`
}

func newInitCmd() *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and an empty data file",
		Long: `Init writes config.yaml to the configuration directory if it is missing
and creates an empty data file containing only the header row.

An existing config.yaml or data file is left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, backend)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", types.BackendCSV, "storage backend written to a new config.yaml (csv, sqlite or jsonl)")
	return cmd
}

func runInit(cmd *cobra.Command, backend string) error {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("%w: create config directory: %v", types.ErrIO, err)
	}

	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, configFile{Backend: backend, DataFile: flags.dataFile}); err != nil {
		return err
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.DataFile); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755); err != nil {
			return fmt.Errorf("%w: create data directory: %v", types.ErrIO, err)
		}
		if err := crm.NewManager().Save(newBackend(cfg.Backend), cfg.DataFile); err != nil {
			return fmt.Errorf("initialize data file: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "InsuraPro initialized (%s backend, data file %s)\n", cfg.Backend, cfg.DataFile)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path string, cfg configFile) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if !types.IsValidBackend(cfg.Backend) {
		return fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write config: %v", types.ErrIO, err)
	}
	return nil
}
