// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structures and valid values for server
// settings, such as the known supplier feed tags.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the startup
// auto-import switch.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the catalog feature to validate supplier tags.
package server
