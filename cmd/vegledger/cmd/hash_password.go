package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pigeonworks-llc/vegledger/pkg/auth"
)

// hashPasswordCmd prints a bcrypt hash for the users file.
var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a password hash for the users file",
	Long: `Print a bcrypt hash to paste into the password_hash field of the
users file. The password is prompted for when not given.

Example:
  vegledger hash-password`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pass string
		if len(args) == 1 {
			pass = args[0]
		} else {
			var err error
			pass, err = promptPassword("Password: ")
			if err != nil {
				return err
			}
		}

		hash, err := auth.HashPassword(pass)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
