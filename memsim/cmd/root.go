// Package cmd provides the command-line interface for memsim.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "memsim <reference-sequence-file>",
	Short: "Replay a logical address trace through a demand-paged memory.",
	Long: `Memsim reads a reference sequence of logical addresses, one decimal ` +
		`address per line, and translates each address through a TLB, a page ` +
		`table, and a set of physical frames filled on demand from a backing ` +
		`store image. It prints one line per address and a final statistics ` +
		`block, and can record the run to CSV or SQLite for later inspection.`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
