// Package catalog is the product catalog feature: supplier feed ingestion,
// normalized storage, and the HTTP surface for browsing the result.
//
// The heavy lifting lives in the subpackages (feed, normalize, ingest,
// repository); this package wires them together behind the Service and
// exposes them as a loadable feature.
package catalog
