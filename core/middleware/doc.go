// Package middleware groups the Fiber middleware used by the HTTP server.
//
// Subpackages:
//   - rayid: assigns a unique ray_id to every request for log correlation
//   - auth: simple API-key protection for the whole API surface
package middleware
