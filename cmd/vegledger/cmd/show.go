package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/vegledger/pkg/ledger"
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the current figures and totals",
	Long: `Display the business date, buying amounts, each location's figures,
the THELA sales setting and the computed totals.

Example:
  vegledger show`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(context.Background())
	if err != nil {
		return err
	}
	defer a.Close()

	printLedger(cmd.OutOrStdout(), a.session.Snapshot(), a.session.Totals())
	return nil
}

func printLedger(w io.Writer, snap ledger.Snapshot, totals ledger.Totals) {
	fmt.Fprintf(w, "\n=== %s ===\n", snap.Date)

	fmt.Fprintln(w, "\nBuying")
	for _, c := range snap.Buying.SortedCategories() {
		fmt.Fprintf(w, "  %-22s %s\n", capitalize(c), formatCurrency(snap.Buying.Amount(c)))
	}
	fmt.Fprintf(w, "  %-22s %s\n", "Total", formatCurrency(snap.Buying.Total))

	for _, spec := range ledger.Registry() {
		f := snap.Locations[spec.Name]
		fmt.Fprintf(w, "\n%s\n", spec.Name)
		if spec.Kind == ledger.Online {
			fmt.Fprintf(w, "  %-22s %s\n", "Total Sales", formatCurrency(f.Total))
			continue
		}
		fmt.Fprintf(w, "  %-22s %s\n", "In Drawer", formatCurrency(f.InDrawer))
		fmt.Fprintf(w, "  %-22s %s\n", "For Buying", formatCurrency(f.ForBuying))
		fmt.Fprintf(w, "  %-22s %s\n", "Expenses", formatCurrency(f.Expenses))
	}

	fmt.Fprintf(w, "\nInclude THELA sales:     %s\n", onOff(snap.Settings.IncludeThelaSales))

	fmt.Fprintln(w, "\n=== Totals ===")
	fmt.Fprintf(w, "Total sales:             %s\n", formatCurrency(totals.TotalSales))
	fmt.Fprintf(w, "Total cash given:        %s\n", formatCurrency(totals.TotalCashGiven))
	fmt.Fprintf(w, "Total expenses:          %s\n", formatCurrency(totals.TotalExpenses))
	fmt.Fprintf(w, "Net profit:              %s\n", formatCurrency(totals.NetProfit))
	fmt.Fprintln(w)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
