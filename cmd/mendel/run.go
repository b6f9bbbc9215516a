package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mendelian/mendel/internal/cli"
)

// runCmd executes an experiment definition file.
var runCmd = &cobra.Command{
	Use:   "run <definition>",
	Short: "Run an experiment definition and report the empirical distribution",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		trials, _ := cmd.Flags().GetUint64("trials")
		policy, _ := cmd.Flags().GetString("policy")
		workers, _ := cmd.Flags().GetInt("workers")
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")
		level, _ := cmd.Flags().GetFloat64("level")

		opts := cli.RunOptions{
			DefinitionPath: args[0],
			Trials:         trials,
			Policy:         policy,
			Workers:        workers,
			JSON:           jsonMode,
			Plain:          plain,
			Level:          level,
			Out:            os.Stdout,
			Logger:         newLogger(cmd),
		}
		if cmd.Flags().Changed("seed") {
			seed, _ := cmd.Flags().GetUint64("seed")
			opts.Seed = &seed
		}

		if err := cli.Run(cmd.Context(), opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint64("trials", 0, "Override the definition's trial count")
	runCmd.Flags().Uint64("seed", 0, "Seed for reproducible runs (overrides the definition)")
	runCmd.Flags().String("policy", "", "Error policy: abort or skip-and-continue")
	runCmd.Flags().Int("workers", 0, "Number of parallel trial batches")
	runCmd.Flags().Bool("json", false, "Emit the result as JSON")
	runCmd.Flags().Bool("plain", false, "Print the raw markdown report without styling")
	runCmd.Flags().Float64("level", 0.95, "Confidence level for reported intervals")
}
