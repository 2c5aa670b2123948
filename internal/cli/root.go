// Package cli implements the insurapro command-line interface: one-shot
// cobra commands over the client store plus the interactive menu.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/pkg/insurapro"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataFile  string
	jsonMode  bool
	verbose   bool
}

var flags rootFlags

// NewRootCmd creates the top-level "insurapro" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags = rootFlags{}
	root := &cobra.Command{
		Use:     "insurapro",
		Short:   "InsuraPro CRM keeps clients and their interaction history",
		Long:    "InsuraPro manages insurance clients, their appointments and contracts,\nstored in a comma-separated data file.",
		Version: insurapro.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataFile, "data-file", "", "data file (default: ./crm_data.csv)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newClientCmd())
	root.AddCommand(newInteractionCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newMenuCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode maps an error to a process exit code. Data file failures are
// system errors and everything else is a usage error.
func exitCode(err error) int {
	if errors.Is(err, types.ErrIO) || errors.Is(err, types.ErrUnreadable) {
		return exitSysError
	}
	return exitUserError
}
