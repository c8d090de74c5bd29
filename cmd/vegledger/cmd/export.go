package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/vegledger/pkg/session"
)

var (
	exportFormat string
	exportOut    string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history log (admin only)",
	Long: `Export every history entry as CSV or an Excel workbook.

The default output is <export dir>/<year>/business-history-<date>.<format>,
where <date> is the current business date. An existing file is overwritten
with a warning. Use --out - to write to stdout.

Example:
  vegledger -u admin export
  vegledger -u admin export --format xlsx
  vegledger -u admin export --out - > history.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "output format (csv, xlsx)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default under the export directory)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := session.ParseExportFormat(exportFormat)
	if err != nil {
		return err
	}

	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	if exportOut == "-" {
		if err := a.session.Export(cmd.OutOrStdout(), format); err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}
		return nil
	}

	outPath := exportOut
	if outPath == "" {
		outPath, err = a.paths.GetExportPath(a.session.Snapshot().Date, string(format))
		if err != nil {
			return fmt.Errorf("failed to resolve export path: %w", err)
		}
	}
	if err := a.paths.EnsureParentDir(outPath); err != nil {
		return err
	}

	if a.paths.FileExists(outPath) {
		slog.Warn("Overwriting existing export", "path", outPath)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: overwriting %s\n", outPath)
	}

	if err := writeExport(a.session, outPath, format); err != nil {
		return err
	}

	entries := len(a.session.History())
	slog.Info("History exported", "path", outPath, "format", format, "entries", entries)
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", entries, outPath)
	return nil
}

// writeExport writes the export to path, removing the file if it fails.
func writeExport(s *session.Session, path string, format session.ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	err = s.Export(f, format)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to export: %w", err)
	}
	return nil
}
