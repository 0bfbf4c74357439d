// Package models defines the quote request schema: a ProductRequest created
// by a customer and the ProviderQuote rows its quote run produces.
package models
