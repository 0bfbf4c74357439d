// Package repository persists normalized catalog records.
//
// Identity resolution is scoped by source: external_id is tried first, then
// product_code. The stored internal id survives updates, so re-ingesting a
// feed never churns product ids.
//
// Variants and assets are owned children: every persist deletes the stored
// set and inserts the incoming one inside the product's transaction. Assets
// referencing a variant the feed no longer carries are kept at product level.
package repository
