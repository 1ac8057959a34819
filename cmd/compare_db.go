package cmd

import (
	"fmt"
	"os"

	"github.com/daschr/tripwirs/internal/integrity"
	"github.com/daschr/tripwirs/internal/policy"
	"github.com/daschr/tripwirs/internal/utils"

	"github.com/spf13/cobra"
)

var compareDBCmd = &cobra.Command{
	Use:   "compare_db <encrypted-policy-path> <db>",
	Short: "Re-scans the policy roots and reports deviations from the database",
	Long: `Walks every scan root again and prints one line per deviation: changed
hashes, type changes, additions, and removals. Diff lines go to stderr so
they can be collected separately from regular output. No output means the
tree matches the recorded state.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		passphrase, err := utils.ReadPassphrase("Passphrase: ")
		if err != nil {
			return err
		}

		p, err := policy.Load(args[0], string(passphrase))
		if err != nil {
			return fmt.Errorf("could not get config: %w", err)
		}

		if err := integrity.CompareDB(p, args[1], string(passphrase), os.Stderr, Logger); err != nil {
			return fmt.Errorf("could not compare database: %w", err)
		}

		return nil
	},
}
