package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"task-manager/internal/config"
	"task-manager/internal/httpapi"
	"task-manager/internal/services"
)

func (r *RootCommand) newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API on the configured address.

Requests that reach the database before it is initialized are answered with
503. If initialization fails the server stops and taskd exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.runServe(cmd)
		},
	}
}

func (r *RootCommand) runServe(cmd *cobra.Command) error {
	ln, err := net.Listen("tcp", r.config.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", r.config.Addr(), err)
	}
	return Serve(cmd.Context(), r.config, ln, r.logger)
}

// Serve runs the HTTP API on ln until ctx is cancelled. Database
// initialization starts alongside the listener; its failure stops the
// server and is returned.
func Serve(ctx context.Context, cfg *config.Config, ln net.Listener, logger *slog.Logger) error {
	barrier := config.StartDatabase(ctx, cfg)
	defer barrier.Close()

	container := services.NewServiceContainer(barrier, cfg)
	srv := &http.Server{
		Handler:           httpapi.NewServer(container, barrier, cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", ln.Addr().String(), "env", string(cfg.Environment))
		serveErr <- srv.Serve(ln)
	}()

	initDone := make(chan error, 1)
	go func() {
		initCtx, cancel := context.WithTimeout(ctx, cfg.Database.InitTimeout)
		defer cancel()
		initDone <- barrier.Wait(initCtx)
	}()

	for {
		select {
		case err := <-initDone:
			if err != nil {
				shutdown(srv, cfg.Server.ShutdownTimeout, logger)
				return fmt.Errorf("initialize database: %w", err)
			}
			logger.Info("database ready", "backend", barrier.Dialect().Name())
			initDone = nil
		case err := <-serveErr:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
			logger.Info("shutting down")
			return shutdown(srv, cfg.Server.ShutdownTimeout, logger)
		}
	}
}

func shutdown(srv *http.Server, timeout time.Duration, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
		return err
	}
	return nil
}
