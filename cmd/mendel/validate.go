package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mendelian/mendel/internal/cli"
)

// validateCmd checks a definition file without running it.
var validateCmd = &cobra.Command{
	Use:   "validate <definition>",
	Short: "Validate an experiment definition file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.Validate(args[0], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
