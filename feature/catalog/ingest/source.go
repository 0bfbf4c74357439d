package ingest

import (
	"context"
	"encoding/json"

	"catalog-sync/core/server"
	"catalog-sync/feature/catalog/feed"
	"catalog-sync/feature/catalog/normalize"
)

// Source is one supplier feed paired with its normalizer. The engine is
// indifferent to how records are fetched or what shape they arrive in.
type Source interface {
	// Name is the supplier tag stamped on every product from this source.
	Name() string
	// Fetch retrieves the full raw record batch.
	Fetch(ctx context.Context) ([]json.RawMessage, error)
	// Normalize converts one raw record. It never fails.
	Normalize(raw json.RawMessage) normalize.Canonical
}

// MidoceanSource adapts the midocean gateway client.
type MidoceanSource struct {
	client *feed.MidoceanClient
}

// NewMidoceanSource creates the midocean ingestion source.
func NewMidoceanSource(client *feed.MidoceanClient) *MidoceanSource {
	return &MidoceanSource{client: client}
}

// Name implements Source.
func (s *MidoceanSource) Name() string { return server.SupplierMidocean }

// Fetch implements Source.
func (s *MidoceanSource) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	return s.client.Products(ctx)
}

// Normalize implements Source.
func (s *MidoceanSource) Normalize(raw json.RawMessage) normalize.Canonical {
	return normalize.NormalizeMidocean(raw)
}

// XDConnectsSource adapts the XD Connects feed client.
type XDConnectsSource struct {
	client *feed.XDConnectsClient
}

// NewXDConnectsSource creates the XD Connects ingestion source.
func NewXDConnectsSource(client *feed.XDConnectsClient) *XDConnectsSource {
	return &XDConnectsSource{client: client}
}

// Name implements Source.
func (s *XDConnectsSource) Name() string { return server.SupplierXDConnects }

// Fetch implements Source.
func (s *XDConnectsSource) Fetch(ctx context.Context) ([]json.RawMessage, error) {
	return s.client.Products(ctx)
}

// Normalize implements Source.
func (s *XDConnectsSource) Normalize(raw json.RawMessage) normalize.Canonical {
	return normalize.NormalizeXDConnects(raw)
}
