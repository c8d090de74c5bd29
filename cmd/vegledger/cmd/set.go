package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/vegledger/pkg/ledger"
)

// setCmd groups the editing commands.
var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Edit the current figures (admin only)",
	Long: `Edit buying amounts, location figures, the THELA sales setting or
the business date. Amounts that are not valid non-negative numbers are
stored as 0. Every edit is persisted immediately; use "save" to add a
history entry.`,
}

var setBuyingCmd = &cobra.Command{
	Use:   "buying <category> <amount>",
	Short: "Set a buying category amount",
	Long: `Set the amount spent on a buying category, "veg" or "fruit".

Example:
  vegledger set buying veg 1200
  vegledger set buying fruit 800`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		amount := ledger.ParseAmount(args[1])
		if err := a.session.SetBuying(ctx, args[0], amount); err != nil {
			return fmt.Errorf("failed to set buying: %w", err)
		}

		slog.Debug("Buying updated", "category", args[0], "amount", amount)
		fmt.Fprintf(cmd.OutOrStdout(), "Buying %s = %s (total %s)\n",
			strings.ToLower(args[0]), formatCurrency(amount), formatCurrency(a.session.Snapshot().Buying.Total))
		return nil
	},
}

var setLocationCmd = &cobra.Command{
	Use:   "location <location> <field> <amount>",
	Short: "Set a location field",
	Long: `Set one money field of a sale location.

Physical locations (UP, DOWN, THELA) take drawer, buying or expenses.
ONLINE takes total.

Example:
  vegledger set location up drawer 5400
  vegledger set location thela expenses 150
  vegledger set location online total 900`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		field, err := ledger.ParseField(args[1])
		if err != nil {
			return fmt.Errorf("invalid field %q: %w", args[1], err)
		}

		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		amount := ledger.ParseAmount(args[2])
		if err := a.session.SetLocationField(ctx, args[0], field, amount); err != nil {
			return fmt.Errorf("failed to set location field: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", strings.ToUpper(args[0]), field, formatCurrency(amount))
		return nil
	},
}

var setThelaCmd = &cobra.Command{
	Use:   "thela <on|off>",
	Short: "Include or exclude THELA sales from total sales",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		include, err := parseSwitch(args[0])
		if err != nil {
			return err
		}

		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.session.SetIncludeThelaSales(ctx, include); err != nil {
			return fmt.Errorf("failed to change setting: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Include THELA sales: %s (total sales %s)\n",
			onOff(include), formatCurrency(a.session.Totals().TotalSales))
		return nil
	},
}

var setDateCmd = &cobra.Command{
	Use:   "date <YYYY-MM-DD>",
	Short: "Set the business date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.session.SetDate(ctx, args[0]); err != nil {
			return fmt.Errorf("failed to set date: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", args[0])
		return nil
	},
}

func init() {
	setCmd.AddCommand(setBuyingCmd)
	setCmd.AddCommand(setLocationCmd)
	setCmd.AddCommand(setThelaCmd)
	setCmd.AddCommand(setDateCmd)
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
