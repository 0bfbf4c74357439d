// Package normalize converts raw supplier records into the canonical
// Product/Variant/DigitalAsset triple.
//
// Normalization never fails. The worst case is degraded-but-valid output: a
// placeholder name, nil optional fields, a capped raw payload. Every
// fallback taken is recorded in Canonical.Notes for the orchestrator to log.
//
// # Field extraction
//
// Midocean records are read through priority-ordered key chains that cover
// the snake_case, camelCase, and PascalCase spellings the gateway has used
// over time. XD Connects records decode into the typed feed.XDProduct
// struct; the feed is consistently PascalCase so no chains are needed.
//
// # Name policy
//
// A product name is never empty: name-like fields are tried in priority
// order, then the product code, then a supplier-labelled external id, then a
// synthesized unique placeholder. Names wider than the column are truncated
// with an ellipsis marker.
package normalize
