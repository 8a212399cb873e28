package controller

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/byteprobe/internal/model"
)

// Factory creates the Controller for one input. Its report must be written
// to out.
type Factory func(out io.Writer) (*Controller, error)

// BatchProcessor interprets several inputs concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Controller because:
// 1. It keeps the Controller focused on a single strictly ordered run
// 2. Each input gets a fresh Controller, so no state leaks between inputs
// 3. Output ordering is handled in one place
type BatchProcessor struct {
	// factory creates a new controller for each input.
	factory Factory

	// concurrency is the maximum number of inputs processed at once.
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

// WithConcurrency sets the maximum number of inputs processed at once.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(factory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		factory:     factory,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch interprets every path and writes the reports to out in the
// order of paths.
//
// Design decision: each report is rendered into its own buffer and nothing
// reaches out until every input succeeded. The first failure cancels the
// remaining inputs through the errgroup context and is returned, so a
// failed batch never leaves a partial mix of reports behind.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, paths []string, out io.Writer, args []string) ([]*model.Report, error) {
	bp.logger.Info("starting batch processing",
		"total_inputs", len(paths),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	buffers := make([]bytes.Buffer, len(paths))
	reports := make([]*model.Report, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			ctrl, err := bp.factory(&buffers[i])
			if err != nil {
				return err
			}

			report, runErr := ctrl.Run(ctx, path, args)
			closeErr := ctrl.Close()
			if runErr != nil {
				bp.logger.Warn("input failed",
					"path", path,
					"error", runErr,
				)
				return runErr
			}
			if closeErr != nil {
				return closeErr
			}

			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range buffers {
		if _, err := buffers[i].WriteTo(out); err != nil {
			return nil, err
		}
	}

	bp.logger.Info("batch processing complete",
		"total_inputs", len(paths),
		"elapsed", time.Since(startTime),
	)
	return reports, nil
}
