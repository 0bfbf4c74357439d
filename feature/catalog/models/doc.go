// Package models defines the canonical relational model the supplier feeds
// are normalized into: Product, ProductVariant and DigitalAsset.
//
// One raw supplier record yields exactly one Product plus its variant and
// asset children. Products are matched across syncs via (source, external_id)
// or (source, product_code); children follow a full-replace lifecycle and are
// cascade-deleted with their product.
package models
