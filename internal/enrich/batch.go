package enrich

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// progressEvery controls how often batch progress is logged.
const progressEvery = 25

// Run enriches every record, workers at a time (sequential when workers <= 1),
// and returns the per-record attributes aligned with input order regardless of
// completion order. Records are independent; each result lands in its own
// slot. The returned error is non-nil only on cancellation, in which case no
// partial results are salvaged.
func (e *Enricher) Run(ctx context.Context, records []Record, workers int) ([]Attributes, error) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("enrichment run starting",
		zap.Int("records", len(records)),
		zap.Int("workers", workers),
	)

	results := make([]Attributes, len(records))
	var completed atomic.Int64

	process := func(ctx context.Context, i int) error {
		attrs, err := e.EnrichRecord(ctx, records[i])
		if err != nil {
			return err
		}
		results[i] = attrs

		n := completed.Add(1)
		if n%progressEvery == 0 || n == int64(len(records)) {
			log.Info("enrichment progress",
				zap.Int64("completed", n),
				zap.Int("total", len(records)),
			)
		}
		return nil
	}

	if workers <= 1 {
		for i := range records {
			if err := process(ctx, i); err != nil {
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := range records {
			i := i
			g.Go(func() error {
				return process(gctx, i)
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	var failed int
	for _, attrs := range results {
		if _, ok := attrs[KeyRecordError]; ok {
			failed++
			continue
		}
		if _, ok := attrs[KeyGeocoderError]; ok && len(attrs) == 1 {
			failed++
		}
	}

	log.Info("enrichment run complete",
		zap.Int("records", len(records)),
		zap.Int("succeeded", len(records)-failed),
		zap.Int("failed", failed),
	)
	return results, nil
}
