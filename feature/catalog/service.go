package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog-sync/core/server"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/ingest"
	"catalog-sync/feature/catalog/models"
	"catalog-sync/feature/catalog/repository"
)

// Service handles catalog operations.
type Service struct {
	repo    *repository.Repository
	engine  *ingest.Engine
	sources map[string]ingest.Source
	logger  *zap.Logger
}

// NewService creates a new catalog service.
func NewService(db *gorm.DB, feeds feed.Config, logger *zap.Logger) *Service {
	repo := repository.New(db, logger)

	sources := map[string]ingest.Source{
		server.SupplierMidocean: ingest.NewMidoceanSource(
			feed.NewMidoceanClient(feeds.Midocean, logger),
		),
		server.SupplierXDConnects: ingest.NewXDConnectsSource(
			feed.NewXDConnectsClient(feeds.XDConnects, logger),
		),
	}

	return &Service{
		repo:    repo,
		engine:  ingest.NewEngine(repo, logger),
		sources: sources,
		logger:  logger,
	}
}

// Sync runs a synchronization for the named suppliers, or for all suppliers
// when none are given. A limit above zero truncates each supplier's batch.
func (s *Service) Sync(ctx context.Context, suppliers []string, limit int) (*ingest.Report, error) {
	if len(suppliers) == 0 {
		suppliers = server.Suppliers()
	}

	sources := make([]ingest.Source, 0, len(suppliers))
	for _, name := range suppliers {
		src, ok := s.sources[name]
		if !ok {
			return nil, fmt.Errorf("unknown supplier %q", name)
		}
		sources = append(sources, src)
	}

	s.logger.Info("Starting catalog sync",
		zap.Strings("suppliers", suppliers),
		zap.Int("limit", limit),
	)
	return s.engine.Run(ctx, sources, limit), nil
}

// ImportHandle tracks a background import run. Done is closed when the run
// finishes; Report is valid only after that.
type ImportHandle struct {
	done   chan struct{}
	report *ingest.Report
}

// Done returns a channel closed when the import finishes.
func (h *ImportHandle) Done() <-chan struct{} {
	return h.done
}

// Report returns the finished run's report, or nil while still running.
func (h *ImportHandle) Report() *ingest.Report {
	select {
	case <-h.done:
		return h.report
	default:
		return nil
	}
}

// Wait blocks until the import finishes or the context is cancelled.
func (h *ImportHandle) Wait(ctx context.Context) (*ingest.Report, error) {
	select {
	case <-h.done:
		return h.report, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// StartImport kicks off a full import of every supplier in the background
// and returns a handle the caller can observe. Startup uses this so the
// server comes up immediately while the first sync runs behind it.
func (s *Service) StartImport(ctx context.Context) *ImportHandle {
	handle := &ImportHandle{done: make(chan struct{})}

	go func() {
		defer close(handle.done)
		report, err := s.Sync(ctx, nil, 0)
		if err != nil {
			// Sync only errors on unknown supplier names; with the full list
			// this is unreachable, but a future refactor should still surface it.
			s.logger.Error("Initial import failed to start", zap.Error(err))
			report = &ingest.Report{}
		}
		handle.report = report
		s.logger.Info("Initial import finished", zap.Int("saved", report.Saved()))
	}()

	return handle
}

// ListProducts returns products, optionally filtered by source.
func (s *Service) ListProducts(ctx context.Context, filter repository.ListFilter) ([]models.Product, int64, error) {
	if filter.Source != "" && !server.IsValidSupplier(filter.Source) {
		return nil, 0, fmt.Errorf("unknown supplier %q", filter.Source)
	}
	return s.repo.List(ctx, filter)
}

// GetProduct returns one product with its variants and assets.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.Get(ctx, id)
}
