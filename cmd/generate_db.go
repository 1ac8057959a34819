package cmd

import (
	"fmt"

	"github.com/daschr/tripwirs/internal/integrity"
	"github.com/daschr/tripwirs/internal/policy"
	"github.com/daschr/tripwirs/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var generateDBCmd = &cobra.Command{
	Use:   "generate_db <encrypted-policy-path> <db-out>",
	Short: "Scans the policy roots and seals a fresh integrity database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := utils.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		p, err := policy.Load(args[0], string(passphrase))
		if err != nil {
			return fmt.Errorf("could not get config: %w", err)
		}
		Logger.Debugf("policy holds %d scan roots, %d ignores", len(p.Scans), len(p.Ignores))

		spinner, cleanup := startSpinner("Scanning...")
		defer cleanup()

		if err := integrity.GenDB(p, args[1], string(passphrase), Logger); err != nil {
			return fmt.Errorf("could not create database: %w", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Integrity database written to " + color.YellowString(args[1])
		return nil
	},
}
