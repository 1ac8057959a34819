package cmd

import (
	"fmt"
	"os"

	"github.com/daschr/tripwirs/internal/integrity"
	"github.com/daschr/tripwirs/internal/utils"

	"github.com/spf13/cobra"
)

var showDBCmd = &cobra.Command{
	Use:   "show_db <db>",
	Short: "Prints the recorded paths of an integrity database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := utils.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		if err := integrity.PrintDB(args[0], string(passphrase), os.Stdout); err != nil {
			return fmt.Errorf("could not show database: %w", err)
		}

		return nil
	},
}
