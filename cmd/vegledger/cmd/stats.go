package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/vegledger/pkg/db"
	"github.com/pigeonworks-llc/vegledger/pkg/kv"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show storage statistics",
	Long: `Show where state is stored, how many history entries exist and when
the last save happened.

Example:
  vegledger stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	w := cmd.OutOrStdout()
	entries := a.session.History()

	fmt.Fprintln(w, "\n=== Storage ===")
	if ephemeral {
		fmt.Fprintln(w, "Driver:          memory")
	} else {
		fmt.Fprintf(w, "Driver:          %s\n", a.cfg.Storage.Driver)
		fmt.Fprintf(w, "Path:            %s\n", a.paths.GetDatabasePath())
	}
	fmt.Fprintf(w, "Export dir:      %s\n", a.paths.GetExportDir())

	fmt.Fprintln(w, "\n=== History ===")
	fmt.Fprintf(w, "Entries:         %d\n", len(entries))
	if len(entries) > 0 {
		latest := entries[0]
		fmt.Fprintf(w, "Latest save:     %s (%s by %s)\n",
			latest.Timestamp.Local().Format("2006-01-02 15:04:05"),
			humanize.Time(latest.Timestamp),
			latest.UpdatedBy)
		fmt.Fprintf(w, "Oldest save:     %s\n", entries[len(entries)-1].Date)
	}

	if sqlStore, ok := a.store.(*db.KVStore); ok {
		fmt.Fprintln(w, "\n=== Last Write ===")
		for _, key := range []string{kv.KeyLedger, kv.KeyHistory} {
			at, found, err := sqlStore.UpdatedAt(ctx, key)
			if err != nil {
				return fmt.Errorf("failed to read write time: %w", err)
			}
			if !found {
				fmt.Fprintf(w, "%-18s never\n", key+":")
				continue
			}
			fmt.Fprintf(w, "%-18s %s\n", key+":", humanize.Time(at))
		}
	}
	fmt.Fprintln(w)
	return nil
}
