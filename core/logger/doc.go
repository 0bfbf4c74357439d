// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The logger is designed to be context-aware. The WithRayID helper extracts
// the RayID (request ID) from a Fiber context and attaches it to the log
// entry, ensuring that all logs related to a specific request can be
// correlated. WithSupplier does the same for ingestion runs, tagging every
// entry with the supplier feed being processed.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In an ingestion run:
//	l := logger.WithSupplier(log, "midocean")
//	l.Warn("Skipping variant without identifier")
package logger
