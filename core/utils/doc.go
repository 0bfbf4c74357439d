// Package utils provides common utility functions for the catalog-sync application.
// It includes null-aware coercion helpers used by the feed normalizers, plus
// string sanitation shared across packages.
package utils
