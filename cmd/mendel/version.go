package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mendelian/mendel"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mendel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mendel version %s\n", mendel.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
