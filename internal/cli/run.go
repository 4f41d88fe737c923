package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/processor"
	"github.com/janscope/annotator/internal/server"
	"github.com/janscope/annotator/internal/storage"
	"github.com/janscope/annotator/internal/telemetry"
)

const (
	bulkChunkSize      = 500
	opsShutdownTimeout = 10 * time.Second
)

var (
	runInput   string
	runOutput  string
	runWorkers int
	runOpsAddr string
)

// runCmd annotates a JSONL batch.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Annotate a JSONL batch of posts",
	Long: `Run reads one post per line (plain or gzip JSONL), annotates each
post, and writes annotated JSONL plus a stats sidecar
(<output>.stats.json).

Example:
  annotator run --input posts.jsonl.gz --output annotated.jsonl
  annotator run --input posts.jsonl --output annotated.jsonl --workers 8`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runInput, "input", "", "input JSONL file (.gz supported)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output JSONL file")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "worker count override (1 = sequential, keeps temporal continuity)")
	runCmd.Flags().StringVar(&runOpsAddr, "ops-addr", "", "also serve /health and /metrics on this address (host:port)")
	_ = runCmd.MarkFlagRequired("input")
	_ = runCmd.MarkFlagRequired("output")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := buildPipeline(ctx, cfgFile)
	if err != nil {
		return err
	}
	defer p.log.Sync() //nolint:errcheck

	if runWorkers > 0 {
		p.cfg.Batch.Workers = runWorkers
	}

	var tel *telemetry.Provider
	if runOpsAddr != "" {
		tel = telemetry.NewProvider()
		stats := p.index.Stats()
		tel.SetGazetteerSize(stats.Villages, stats.UrbanBodies, stats.Districts)

		ops := opsServerAt(runOpsAddr, p, tel)
		go func() {
			if err := ops.Start(); err != nil {
				p.log.Error("ops server failed", logger.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), opsShutdownTimeout)
			defer cancel()
			_ = ops.Shutdown(shutdownCtx)
		}()
	}

	runner := processor.NewBatchRunner(p.annotator, p.cfg.Batch, tel, p.log)
	stats, err := runner.RunFile(ctx, runInput, runOutput)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	if p.cfg.Elasticsearch.Enabled {
		if err := indexOutput(ctx, p, runOutput); err != nil {
			// The annotated file is already on disk; indexing can be
			// retried separately.
			p.log.Error("elasticsearch indexing failed", logger.Error(err))
		}
	}

	fmt.Fprintf(os.Stdout, "annotated %d posts (%d skipped), stats: %s.stats.json\n",
		stats.TotalPosts, stats.SkippedRecords, runOutput)
	return nil
}

// opsServerAt builds the ops server for a host:port flag value.
func opsServerAt(addr string, p *pipeline, tel *telemetry.Provider) *server.Server {
	cfg := config.ServerConfig{}
	if host, port, ok := strings.Cut(addr, ":"); ok {
		cfg.Host = host
		fmt.Sscanf(port, "%d", &cfg.Port) //nolint:errcheck
	}
	return server.New(cfg, p.components(), tel, p.log)
}

// indexOutput bulk-indexes an annotated JSONL file into the configured
// Elasticsearch sink.
func indexOutput(ctx context.Context, p *pipeline, path string) error {
	sink, err := storage.NewSink(p.cfg.Elasticsearch, p.log)
	if err != nil {
		return err
	}
	if err := sink.TestConnection(ctx); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open annotated output: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	chunk := make([]*domain.ParsedPost, 0, bulkChunkSize)
	indexed := 0
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		var post domain.ParsedPost
		if err := json.Unmarshal(scanner.Bytes(), &post); err != nil {
			return fmt.Errorf("decode annotated post: %w", err)
		}
		chunk = append(chunk, &post)

		if len(chunk) == bulkChunkSize {
			if err := sink.BulkIndex(ctx, chunk); err != nil {
				return err
			}
			indexed += len(chunk)
			chunk = chunk[:0]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read annotated output: %w", err)
	}
	if len(chunk) > 0 {
		if err := sink.BulkIndex(ctx, chunk); err != nil {
			return err
		}
		indexed += len(chunk)
	}

	p.log.Info("annotations indexed",
		logger.Int("count", indexed),
		logger.String("file", path))
	return nil
}
