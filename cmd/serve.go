// =============================================================================
// Journal Order Builder - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which starts the HTTP upload
// service. The service accepts CSV uploads, returns the processing results
// as JSON and serves the generated workbook for download.
//
// COMMAND USAGE:
//   journal serve [flags]
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/arenabooks/journal-order/internal/logger"
	"github.com/arenabooks/journal-order/internal/server"
	"github.com/spf13/cobra"
)

// serveAddr overrides the configured listen address when set.
var serveAddr string

// serveCmd represents the 'serve' command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP upload service",
	Long: `The serve command starts the HTTP service. Uploaded CSV exports are
processed immediately and the results are kept in an in-memory session store
with a sliding expiry, so the workbook and the problem report can be
downloaded separately after the upload.

The service shuts down gracefully on SIGINT or SIGTERM, letting in-flight
requests finish before exiting.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

// init registers the serve command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&serveAddr,
		"addr",
		"",
		"Listen address (overrides the configured server.addr)",
	)
}

// runServe starts the HTTP service and blocks until shutdown.
func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	log := logger.New(cfg.LogLevel)

	srv := server.New(cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http service", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http service failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down http service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info("http service stopped")
	return nil
}
