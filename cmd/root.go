// Package cmd wires the tripwirs subcommands. Commands are thin: passphrase
// prompting, argument plumbing, and user-facing messages live here, while
// all scan and crypto semantics sit under internal/.
package cmd

import (
	logger "github.com/daschr/tripwirs/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "tripwirs",
		Short: "Tripwirs - a file integrity monitor with an encrypted fingerprint database.",
		Long: `Tripwirs records authenticated fingerprints of files, symlinks, and empty
directories under a configured scan scope, and later reports what changed.

Both the scan policy and the fingerprint database are stored as
ChaCha20-Poly1305 sealed blobs protected by your passphrase, so an attacker
who can rewrite them cannot forge a clean report.

Typical workflow:
  tripwirs create_config policy.txt policy.sealed
  tripwirs generate_db policy.sealed integrity.db
  tripwirs compare_db policy.sealed integrity.db

The passphrase is always read interactively and never accepted as an
argument.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("initialized with verbose=%t, debug=%t", verbose, debug)
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.SetOut(cmd.ErrOrStderr())
			_ = cmd.Help()
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(createConfigCmd)
	RootCmd.AddCommand(generateDBCmd)
	RootCmd.AddCommand(compareDBCmd)
	RootCmd.AddCommand(showDBCmd)
}
