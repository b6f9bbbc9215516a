package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mendelian/mendel/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "mendel",
	Short: "Mendel estimates outcome probabilities by simulation",
	Long: `Mendel estimates the probability of discrete outcomes by running many
randomized trials over weighted outcome spaces, instead of deriving exact
distributions by hand. Experiments are described in YAML definition files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger builds the application logger from the persistent verbosity flag.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
