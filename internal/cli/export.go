package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurapro/internal/xlsx"
	"github.com/mesh-intelligence/insurapro/pkg/types"
)

const formatXLSX = "xlsx"

func newExportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the data to another format",
		Long: `Export loads the configured data file and writes the same clients and
interactions to --out in the chosen format:

  csv     the comma-separated data file format
  sqlite  a SQLite database readable with "backend: sqlite"
  jsonl   JSON Lines, one client or interaction per line ("backend: jsonl")
  xlsx    an Excel workbook with Clients and Interactions sheets (write only)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			snap := s.manager.Snapshot()

			switch format {
			case formatXLSX:
				err = xlsx.Export(out, snap)
			case types.BackendCSV, types.BackendSQLite, types.BackendJSONL:
				err = newBackend(format).Save(out, snap)
			default:
				return fmt.Errorf("unknown format %q (valid: csv, sqlite, jsonl, xlsx)", format)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", out, err)
			}
			fmt.Fprintf(s.out, "Exported %d clients to %s\n", len(snap.Clients), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatXLSX, "output format: csv, sqlite, jsonl or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "output file (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
