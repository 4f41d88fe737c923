// Package processor drives batch annotation runs: JSONL in, annotated
// JSONL out, plus an aggregate-stats sidecar. It supports a sequential
// mode that preserves temporal-window continuity across posts and a
// bounded worker-pool mode where each worker annotates with its own
// window.
package processor

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/janscope/annotator/internal/annotator"
	"github.com/janscope/annotator/internal/config"
	"github.com/janscope/annotator/internal/domain"
	"github.com/janscope/annotator/internal/logger"
	"github.com/janscope/annotator/internal/telemetry"
)

const (
	defaultProgressEvery = 100
	maxLineBytes         = 4 * 1024 * 1024
)

// BatchRunner annotates a stream of posts. Output line order matches
// input order in sequential mode; worker-pool mode writes results as
// they complete.
type BatchRunner struct {
	ann *annotator.Annotator
	cfg config.BatchConfig
	tel *telemetry.Provider
	log logger.Logger
}

// NewBatchRunner creates a batch runner. The telemetry provider may be
// nil.
func NewBatchRunner(ann *annotator.Annotator, cfg config.BatchConfig, tel *telemetry.Provider, log logger.Logger) *BatchRunner {
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = defaultProgressEvery
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BatchRunner{ann: ann, cfg: cfg, tel: tel, log: log}
}

// RunFile annotates inputPath (plain or .gz JSONL) into outputPath and
// writes the stats sidecar next to it as outputPath + ".stats.json".
func (r *BatchRunner) RunFile(ctx context.Context, inputPath, outputPath string) (*Stats, error) {
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	var reader io.Reader = in
	if strings.HasSuffix(inputPath, ".gz") {
		gz, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("open gzip input: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	stats, err := r.Run(ctx, reader, out)
	if err != nil {
		return stats, err
	}

	sidecar, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return stats, fmt.Errorf("marshal stats: %w", err)
	}
	statsPath := outputPath + ".stats.json"
	if err := os.WriteFile(statsPath, sidecar, 0o644); err != nil {
		return stats, fmt.Errorf("write stats sidecar: %w", err)
	}

	r.log.Info("batch run complete",
		logger.String("run_id", stats.RunID),
		logger.String("output", outputPath),
		logger.String("stats", statsPath),
		logger.Int("total_posts", stats.TotalPosts),
		logger.Int("skipped", stats.SkippedRecords))

	return stats, nil
}

// Run annotates one JSONL stream. Malformed lines are logged, counted
// and skipped; the run continues.
func (r *BatchRunner) Run(ctx context.Context, in io.Reader, out io.Writer) (*Stats, error) {
	runID := uuid.NewString()
	stats := newStats(runID)

	r.log.Info("batch run starting",
		logger.String("run_id", runID),
		logger.Int("workers", r.cfg.Workers))

	writer := bufio.NewWriter(out)
	enc := json.NewEncoder(writer)
	enc.SetEscapeHTML(false)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var err error
	if r.cfg.Workers > 1 {
		err = r.runParallel(ctx, scanner, enc, stats)
	} else {
		err = r.runSequential(ctx, scanner, enc, stats)
	}
	if err != nil {
		return stats, err
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	stats.finalize()
	return stats, nil
}

func (r *BatchRunner) runSequential(ctx context.Context, scanner *bufio.Scanner, enc *json.Encoder, stats *Stats) error {
	line := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line++

		post, err := decode(scanner.Bytes())
		if err != nil {
			r.skip(line, "", err, stats)
			continue
		}
		if post == nil {
			continue
		}

		parsed, err := r.annotate(ctx, r.ann, post)
		if err != nil {
			r.skip(line, post.ID, err, stats)
			continue
		}
		if err := r.emit(enc, stats, parsed); err != nil {
			return err
		}
	}
	return nil
}

// annotResult carries one worker outcome to the collector.
type annotResult struct {
	parsed *domain.ParsedPost
	postID string
	err    error
}

// runParallel fans posts out to a worker pool. Each worker forks the
// annotator so temporal windows never race; a single collector owns the
// encoder and the stats.
func (r *BatchRunner) runParallel(ctx context.Context, scanner *bufio.Scanner, enc *json.Encoder, stats *Stats) error {
	jobs := make(chan *domain.Post, r.cfg.Workers*2)
	results := make(chan annotResult, r.cfg.Workers*2)

	var wg sync.WaitGroup
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker := r.ann.Fork()
			for post := range jobs {
				parsed, err := r.annotate(ctx, worker, post)
				results <- annotResult{parsed: parsed, postID: post.ID, err: err}
			}
		}()
	}

	collectDone := make(chan error, 1)
	go func() {
		for res := range results {
			if res.err != nil {
				r.skip(0, res.postID, res.err, stats)
				continue
			}
			if err := r.emit(enc, stats, res.parsed); err != nil {
				collectDone <- err
				for range results { // drain so workers can exit
				}
				return
			}
		}
		collectDone <- nil
	}()

	line := 0
	var readErr error
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			readErr = err
			break
		}
		line++

		post, err := decode(scanner.Bytes())
		if err != nil {
			results <- annotResult{err: fmt.Errorf("line %d: %w", line, err)}
			continue
		}
		if post == nil {
			continue
		}
		jobs <- post
	}
	close(jobs)

	wg.Wait()
	close(results)

	if err := <-collectDone; err != nil {
		return err
	}
	return readErr
}

// decode parses one input line. Blank lines return (nil, nil) and are
// silently allowed.
func decode(raw []byte) (*domain.Post, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}

	var post domain.Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BatchRunner) skip(line int, id string, err error, stats *Stats) {
	stats.recordSkip()
	r.tel.RecordFailure()
	r.log.Warn("record skipped",
		logger.Int("line", line),
		logger.String("id", id),
		logger.Error(err))
}

func (r *BatchRunner) annotate(ctx context.Context, a *annotator.Annotator, post *domain.Post) (*domain.ParsedPost, error) {
	if r.cfg.PostTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.PostTimeout)
		defer cancel()
	}
	return a.Annotate(ctx, post)
}

// emit writes one annotated post and folds it into the aggregates.
// Only ever called from one goroutine per run.
func (r *BatchRunner) emit(enc *json.Encoder, stats *Stats, parsed *domain.ParsedPost) error {
	if err := enc.Encode(parsed); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	stats.record(parsed)

	source := ""
	if parsed.Location != nil {
		source = parsed.Location.Source
	}
	r.tel.RecordResolution(source)
	r.tel.RecordPost(parsed.EventType, parsed.ReviewStatus, parsed.IsRescued, parsed.RescueTag,
		time.Duration(parsed.Metadata.ProcessingTimeMs)*time.Millisecond)

	if stats.TotalPosts%r.cfg.ProgressEvery == 0 {
		r.log.Info("batch progress",
			logger.String("run_id", stats.RunID),
			logger.Int("processed", stats.TotalPosts),
			logger.Int("skipped", stats.SkippedRecords))
	}
	return nil
}
