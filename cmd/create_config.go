package cmd

import (
	"fmt"

	"github.com/daschr/tripwirs/internal/policy"
	"github.com/daschr/tripwirs/internal/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var createConfigCmd = &cobra.Command{
	Use:   "create_config <plain-policy-path> <encrypted-policy-out>",
	Short: "Parses a plain-text policy and seals it with a passphrase",
	Long: `Reads the plain-text policy file, generates a fresh hashing secret, and
writes the sealed policy blob. The plain file uses [SCAN] and [IGNORE]
sections; '#' lines are comments. Note that a new invocation always draws a
new secret, so databases built from the old sealed policy keep hashing under
the old key.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := utils.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}
		confirm, err := utils.ReadPassphrase("Confirm passphrase: ")
		if err != nil {
			return err
		}
		if string(passphrase) != string(confirm) {
			return fmt.Errorf("passphrases do not match")
		}

		Logger.Infof("parsing policy from %s", args[0])
		spinner, cleanup := startSpinner("Sealing policy...")
		defer cleanup()

		if err := policy.GenConfig(args[0], args[1], string(passphrase)); err != nil {
			return fmt.Errorf("could not generate config: %w", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Sealed policy written to " + color.YellowString(args[1])
		return nil
	},
}
