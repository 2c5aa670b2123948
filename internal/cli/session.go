package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/internal/crm"
	"github.com/mesh-intelligence/insurapro/internal/csvfile"
	"github.com/mesh-intelligence/insurapro/internal/jsonl"
	"github.com/mesh-intelligence/insurapro/internal/paths"
	"github.com/mesh-intelligence/insurapro/internal/sqlite"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// session is the state shared by one command invocation: the resolved
// configuration, the backend for the data file, and the loaded manager.
type session struct {
	cfg     types.Config
	backend crm.Backend
	manager *crm.Manager
	log     zerolog.Logger
	out     io.Writer
}

// newLogger returns a console logger on w. Debug output is enabled by
// --verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(level)
}

// newBackend returns the crm.Backend for a validated backend name.
func newBackend(name string) crm.Backend {
	switch name {
	case types.BackendSQLite:
		return sqlite.NewBackend()
	case types.BackendJSONL:
		return jsonl.NewBackend()
	default:
		return csvfile.NewBackend()
	}
}

// resolveConfig reads config.yaml and resolves the data file location.
func resolveConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	backend := v.GetString(cfgKeyBackend)
	dataFile, err := paths.ResolveDataFile(flags.dataFile, v.GetString(cfgKeyDataFile), backend)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data file: %w", err)
	}

	cfg := types.Config{Backend: backend, DataFile: dataFile}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openSession resolves configuration and loads the data file. A data
// file that cannot be opened is logged and the session starts empty. A
// data file that opens but cannot be read fails the session, so no
// command saves over it.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}

	log := newLogger(cmd.ErrOrStderr(), flags.verbose)
	s := &session{
		cfg:     cfg,
		backend: newBackend(cfg.Backend),
		manager: crm.NewManager(crm.WithLogger(log)),
		log:     log,
		out:     cmd.OutOrStdout(),
	}
	if err := s.load(); err != nil && !errors.Is(err, types.ErrIO) {
		return nil, err
	}
	return s, nil
}

// load replaces the manager state from the data file. On failure the
// previous state is kept and the error is returned; a file that cannot be
// opened is also logged as a warning.
func (s *session) load() error {
	warnings, err := s.manager.Load(s.backend, s.cfg.DataFile)
	if errors.Is(err, types.ErrIO) {
		s.log.Warn().Err(err).Msg("could not open data file, keeping current data")
		return err
	}
	if err != nil {
		return err
	}
	s.log.Debug().Int("clients", s.manager.Store().Len()).Int("warnings", len(warnings)).
		Str("file", s.cfg.DataFile).Msg("data loaded")
	return nil
}

// save writes the manager state to the data file.
func (s *session) save() error {
	return s.manager.Save(s.backend, s.cfg.DataFile)
}

// parseClientNumber converts a 1-based client number, as shown by
// `client list`, into a store index.
func parseClientNumber(arg string, size int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: client number %q", types.ErrInvalidFormat, arg)
	}
	if n < 1 || n > size {
		return 0, fmt.Errorf("%w: client number %d (have %d clients)", types.ErrOutOfRange, n, size)
	}
	return n - 1, nil
}
