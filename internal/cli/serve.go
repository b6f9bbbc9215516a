package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"

	httpadapter "github.com/mendelian/mendel/pkg/adapters/http"
	"github.com/mendelian/mendel/pkg/adapters/memory"
	redisadapter "github.com/mendelian/mendel/pkg/adapters/redis"
	"github.com/mendelian/mendel/pkg/ports"
)

// ServeOptions configures the HTTP serve mode.
type ServeOptions struct {
	Addr     string
	RedisURL string
	Logger   *slog.Logger
}

// Serve runs the HTTP API until the context is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	var store ports.ResultStore = memory.NewStore()
	if opts.RedisURL != "" {
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return fmt.Errorf("parsing redis URL: %w", err)
		}
		store = redisadapter.New(backend.NewClient(redisOpts))
		opts.Logger.Info("using redis result store")
	}

	handler := httpadapter.NewHandler(store, opts.Logger, prometheus.NewRegistry())
	server := &http.Server{
		Addr:    opts.Addr,
		Handler: handler,
	}

	serverErrors := make(chan error, 1)
	go func() {
		opts.Logger.Info("listening", "address", opts.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts.Logger.Info("shutdown signal received")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
