// Package cmd provides CLI commands for vegledger.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	debug     bool
	username  string
	password  string
	ephemeral bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vegledger",
	Short: "Track daily sales and expenses of a vegetable business",
	Long: `vegledger records the day's buying, drawer cash, cash given for
buying and expenses for each sale location (UP, DOWN, THELA, ONLINE),
computes total sales, expenses and net profit, and keeps a history of
the last 100 saved snapshots.

Admins can edit, save and export; viewers can only look.

Example:
  vegledger -u admin set buying veg 1200
  vegledger -u admin set location up drawer 5400
  vegledger -u admin set thela on
  vegledger -u admin save
  vegledger -u 123 show
  vegledger -u admin export --format xlsx`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(os.Getenv("DEBUG") == "true", os.Getenv("LOG_LEVEL"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Errors are reported here, after every deferred Close in the command ran.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		slog.Error("Command failed", "error", err)
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "username (default $VEGLEDGER_USER)")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "password (default $VEGLEDGER_PASSWORD, prompted when empty)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// setupLogging installs the default logger. --debug wins over envDebug,
// which wins over level.
func setupLogging(envDebug bool, level string) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(debug || envDebug, level),
	}))
	slog.SetDefault(logger)
}

func logLevel(debug bool, level string) slog.Level {
	if debug {
		return slog.LevelDebug
	}

	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}
