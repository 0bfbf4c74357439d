// Package quotes simulates comparative provider offers for catalog products.
//
// Each configured provider has fixed pricing characteristics (multiplier,
// variance band, delivery and reliability ranges, response latency window).
// A quote run fans out one simulated call per provider and returns only the
// complete set.
package quotes
