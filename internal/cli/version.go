package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/pkg/insurapro"
)

const modulePath = "github.com/mesh-intelligence/insurapro"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the insurapro version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "insurapro v%s\nmodule: %s\n", insurapro.Version, modulePath)
			return nil
		},
	}
}
