package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// saveCmd represents the save command.
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the current figures to history (admin only)",
	Long: `Persist the current figures and add a snapshot with the computed
totals to the history log. The log keeps the 100 most recent entries.

Example:
  vegledger -u admin save`,
	Args: cobra.NoArgs,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.session.Save(ctx)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "\n=== Saved ===")
	fmt.Fprintf(w, "Date:       %s\n", entry.Date)
	fmt.Fprintf(w, "Saved by:   %s\n", entry.UpdatedBy)
	fmt.Fprintf(w, "Net profit: %s\n", formatCurrency(entry.Data.Totals.NetProfit))
	fmt.Fprintf(w, "Entries:    %d\n", len(a.session.History()))
	return nil
}
