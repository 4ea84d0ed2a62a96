package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/brokerseo/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages rendered at once.
const DefaultConcurrency = 8

// BatchProcessor renders many pages concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Pipeline because:
// 1. It keeps the Pipeline focused on a single page
// 2. It allows different batch strategies without touching the steps
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each page.
	pipelineFactory func() *Pipeline

	// sort is the ranking applied to every page.
	sort model.SortSpec

	// concurrency is the maximum number of concurrent renders.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent renders.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithSort sets the ranking used for every page.
func WithSort(spec model.SortSpec) BatchOption {
	return func(b *BatchProcessor) {
		b.sort = spec
	}
}

// NewBatchProcessor creates a new BatchProcessor.
//
// The pipelineFactory function is called for each page to create a fresh
// pipeline instance, so no step state leaks between pages.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
		sort:            model.DefaultSortSpec(),
		concurrency:     DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch renders every page and returns the results in input order.
// A page whose pipeline fails still has a result with Error set; only
// context cancellation is returned as an error.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, pages []model.PageConfig) ([]*model.PageResult, error) {
	bp.logger.Info("starting batch render",
		"total_pages", len(pages),
		"concurrency", bp.concurrency,
		"sort", bp.sort.String(),
	)

	startTime := time.Now()

	// Each goroutine writes its own index, so no lock is needed.
	results := make([]*model.PageResult, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, cfg := range pages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := model.NewPageResult(cfg, bp.sort)
			if err := bp.pipelineFactory().Execute(ctx, result); err != nil {
				bp.logger.Warn("page render failed",
					"page", cfg.Path,
					"error", err,
				)
			}
			results[i] = result
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch render complete",
		"total_pages", len(pages),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// ProcessBatchWithCallback renders pages and calls callback as each
// one completes. The callback runs on the rendering goroutine, so it
// must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	pages []model.PageConfig,
	callback func(result *model.PageResult, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, cfg := range pages {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := model.NewPageResult(cfg, bp.sort)
			_ = bp.pipelineFactory().Execute(ctx, result) //nolint:errcheck // Error is stored in result
			callback(result, i)
			return nil
		})
	}

	return g.Wait()
}
