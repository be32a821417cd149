package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"feedback-analysis/internal/models"
)

// RecordExecutor classifies one record and applies the write policy.
type RecordExecutor interface {
	Execute(ctx context.Context, record models.Record) models.RowResult
}

// Processor fans records out to a bounded worker pool. Results land in a
// slice indexed by input position, so output order always matches input
// order regardless of worker scheduling. Each record is executed exactly
// once. One worker reproduces strictly sequential processing.
type Processor struct {
	executor RecordExecutor
	workers  int
	logger   *zerolog.Logger
}

func NewProcessor(executor RecordExecutor, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		executor: executor,
		workers:  workers,
		logger:   logger,
	}
}

func (p *Processor) Process(ctx context.Context, records []models.Record) ([]models.RowResult, error) {
	results := make([]models.RowResult, len(records))

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = p.executor.Execute(ctx, records[i])
			}
		}()
	}

	var dispatchErr error
dispatch:
	for i := range records {
		select {
		case jobs <- i:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if dispatchErr != nil {
		p.logger.Warn().Err(dispatchErr).Msg("processing cancelled")
		return nil, dispatchErr
	}

	return results, nil
}
