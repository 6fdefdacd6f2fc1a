// Electrolux-ac is a command-line controller for Electrolux OEM
// (Broadlink-based) air conditioners.
//
// It speaks the vendor's encrypted binary protocol over UDP on the local
// network: every invocation authenticates a fresh session with the unit,
// sends one command, and prints the device's JSON reply.
//
// Usage:
//
//	electrolux-ac [command] [flags]
//
// The device address comes from the config file (see 'electrolux-ac status'
// on first run) or the --device flag. Set ELECTROLUX_LOG_LEVEL=debug for
// protocol-level hex dumps on stderr.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/christiandt/electrolux-ac-cli/internal/logging"
	"github.com/christiandt/electrolux-ac-cli/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "electrolux-ac",
	Short: "Electrolux Air Conditioner Controller",
	Long: `A command-line controller for Electrolux OEM air conditioners.

Each command performs one authenticated round trip to the unit over the
local network and prints the device's JSON reply. The device address is
read from the config file or the --device flag.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.InitializeFromEnv()
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("electrolux-ac %s (commit: %s)\n", version.Version, version.Commit)
	},
}
