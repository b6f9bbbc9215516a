package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mendelian/mendel/pkg/adapters/mcp"
)

// mcpCmd exposes the simulate tool over the Model Context Protocol.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the simulation engine as an MCP server on stdio",
	Run: func(cmd *cobra.Command, args []string) {
		if err := mcp.NewServer().ServeStdio(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
