package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/server"
	"github.com/janscope/annotator/internal/telemetry"
)

const serveShutdownTimeout = 30 * time.Second

// serveCmd runs the standalone ops server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ops endpoints (/health, /metrics)",
	Long: `Serve starts the ops HTTP server without running a batch. It reports
component health (gazetteer, taxonomy, semantic backend) and exposes
Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer p.log.Sync() //nolint:errcheck

	tel := telemetry.NewProvider()
	stats := p.index.Stats()
	tel.SetGazetteerSize(stats.Villages, stats.UrbanBodies, stats.Districts)

	srv := server.New(p.cfg.Server, p.components(), tel, p.log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		p.log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		p.log.Error("graceful shutdown failed", logger.Error(err))
		return err
	}
	return <-errCh
}
