// Package feed contains the HTTP clients for the upstream supplier feeds.
//
// Two independent suppliers are supported, with incompatible schemas:
//
//   - Midocean: a gateway API returning document-oriented product records
//     with nested variants[] and digital_assets[], authenticated via the
//     x-Gateway-APIKey header. The response may be a bare array or an object
//     wrapping the list under a handful of known keys.
//   - XD Connects: a flat JSON feed of PascalCase-keyed records, downloaded
//     from a pre-signed URL.
//
// Both clients return raw JSON records; decoding into supplier-specific
// shapes is the normalizer's job. A feed failure is fatal to that supplier's
// ingestion run only and is surfaced as a *FetchError.
package feed
