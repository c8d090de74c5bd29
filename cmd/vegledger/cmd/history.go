package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/vegledger/pkg/history"
)

var historyLimit int

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved snapshots, newest first",
	Long: `List saved snapshots with their totals, newest first.

Example:
  vegledger history
  vegledger history --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	printHistory(cmd.OutOrStdout(), a.session.History(), historyLimit)
	return nil
}

func printHistory(w io.Writer, entries []history.Entry, limit int) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}

	shown := entries
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	fmt.Fprintf(w, "%-10s  %-14s  %-12s  %14s  %14s  %14s\n",
		"Date", "Saved", "By", "Sales", "Expenses", "Net Profit")
	for _, e := range shown {
		t := e.Data.Totals
		fmt.Fprintf(w, "%-10s  %-14s  %-12s  %14s  %14s  %14s\n",
			e.Date,
			humanize.Time(e.Timestamp),
			e.UpdatedBy,
			formatCurrency(t.TotalSales),
			formatCurrency(t.TotalExpenses),
			formatCurrency(t.NetProfit),
		)
	}

	if len(shown) < len(entries) {
		fmt.Fprintf(w, "... %d more\n", len(entries)-len(shown))
	}
}
