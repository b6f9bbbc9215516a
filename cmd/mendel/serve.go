package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mendelian/mendel/internal/cli"
	"github.com/mendelian/mendel/internal/config"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulation API over HTTP",
	Long: `Starts an HTTP server exposing POST /simulate, stored run results under
/runs, and prometheus collectors on /metrics. Results are kept in memory
unless a redis URL is configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}
		redisURL, _ := cmd.Flags().GetString("redis-url")
		if redisURL == "" {
			redisURL = cfg.RedisURL
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := cli.ServeOptions{
			Addr:     addr,
			RedisURL: redisURL,
			Logger:   newLogger(cmd),
		}
		if err := cli.Serve(ctx, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Bind address (default from MENDEL_LISTEN_ADDR)")
	serveCmd.Flags().String("redis-url", "", "Redis URL for the result store (default from MENDEL_REDIS_URL)")
}
