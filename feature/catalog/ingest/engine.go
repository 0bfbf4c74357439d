package ingest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"catalog-sync/core/logger"
	"catalog-sync/feature/catalog/normalize"
)

// maxErrorDetails caps per-supplier error details in the report. The full
// error stream still goes to the log.
const maxErrorDetails = 10

// Persister commits one normalized record.
type Persister interface {
	Persist(ctx context.Context, c *normalize.Canonical) (created bool, err error)
}

// RecordError identifies one failed record in a report.
type RecordError struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// SupplierReport is the outcome of one supplier's run.
type SupplierReport struct {
	Supplier string `json:"supplier"`
	Fetched  int    `json:"fetched"`
	Saved    int    `json:"saved"`
	Created  int    `json:"created"`
	Updated  int    `json:"updated"`
	Skipped  int    `json:"skipped"`
	Errored  int    `json:"errored"`
	// Details holds the first few record errors; the count above is complete.
	Details []RecordError `json:"details,omitempty"`
	// FeedError is set when the feed itself could not be fetched. The other
	// counters are zero in that case.
	FeedError string `json:"feed_error,omitempty"`

	DurationMS int64 `json:"duration_ms"`
}

// Report aggregates all supplier runs of one sync.
type Report struct {
	Suppliers  []SupplierReport `json:"suppliers"`
	StartedAt  time.Time        `json:"started_at"`
	DurationMS int64            `json:"duration_ms"`
}

// Saved sums saved counts across suppliers.
func (r *Report) Saved() int {
	total := 0
	for _, s := range r.Suppliers {
		total += s.Saved
	}
	return total
}

// Engine drives the fetch, normalize, resolve, persist loop per supplier.
type Engine struct {
	store  Persister
	logger *zap.Logger
}

// NewEngine creates an ingestion engine.
func NewEngine(store Persister, log *zap.Logger) *Engine {
	return &Engine{store: store, logger: log}
}

// Run ingests every source. Suppliers run concurrently; records within one
// supplier run sequentially so identity resolution sees its own writes. A
// limit above zero truncates each supplier's batch before processing.
//
// Run never returns an error: feed failures and per-record failures are both
// folded into the report.
func (e *Engine) Run(ctx context.Context, sources []Source, limit int) *Report {
	report := &Report{
		Suppliers: make([]SupplierReport, len(sources)),
		StartedAt: time.Now(),
	}

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			report.Suppliers[i] = e.runSupplier(ctx, src, limit)
		}(i, src)
	}
	wg.Wait()

	report.DurationMS = time.Since(report.StartedAt).Milliseconds()
	return report
}

func (e *Engine) runSupplier(ctx context.Context, src Source, limit int) SupplierReport {
	start := time.Now()
	log := logger.WithSupplier(e.logger, src.Name())
	rep := SupplierReport{Supplier: src.Name()}

	records, err := src.Fetch(ctx)
	if err != nil {
		log.Error("Feed fetch failed", zap.Error(err))
		rep.FeedError = err.Error()
		rep.DurationMS = time.Since(start).Milliseconds()
		return rep
	}

	rep.Fetched = len(records)
	if limit > 0 && len(records) > limit {
		log.Info("Truncating batch", zap.Int("fetched", len(records)), zap.Int("limit", limit))
		records = records[:limit]
	}

	for _, raw := range records {
		c := src.Normalize(raw)
		for _, note := range c.Notes {
			log.Debug("Normalization fallback", zap.String("code", c.Code()), zap.String("note", note))
		}

		if c.SkipReason != "" {
			log.Warn("Record skipped", zap.String("code", c.Code()), zap.String("reason", c.SkipReason))
			rep.Skipped++
			continue
		}

		// The normalizer guarantees a non-empty name; treat a violation as a
		// skip rather than corrupting the table.
		if c.Product.Name == "" {
			log.Warn("Record skipped: empty name after normalization", zap.String("code", c.Code()))
			rep.Skipped++
			continue
		}

		created, err := e.store.Persist(ctx, &c)
		if err != nil {
			log.Error("Record persist failed", zap.String("code", c.Code()), zap.Error(err))
			rep.Errored++
			if len(rep.Details) < maxErrorDetails {
				rep.Details = append(rep.Details, RecordError{Code: c.Code(), Error: err.Error()})
			}
			continue
		}

		rep.Saved++
		if created {
			rep.Created++
		} else {
			rep.Updated++
		}
	}

	rep.DurationMS = time.Since(start).Milliseconds()
	log.Info("Supplier run finished",
		zap.Int("fetched", rep.Fetched),
		zap.Int("saved", rep.Saved),
		zap.Int("created", rep.Created),
		zap.Int("updated", rep.Updated),
		zap.Int("skipped", rep.Skipped),
		zap.Int("errored", rep.Errored),
		zap.Int64("duration_ms", rep.DurationMS),
	)
	return rep
}
