// Package storage provides the small durable key/value layer credentials
// and UI preferences persist through: an in-memory store for tests and
// caches, a JSON file store with per-entry expiry, a Redis-backed store
// for shared deployments, and a mirroring store that writes a primary and
// a secondary so state survives one mechanism being cleared.
//
// A ttl of zero or below means no expiry. Absent or expired keys return
// [ErrNotFound].
//
// # What this package must NOT do
//
//   - Interpret values. Everything is an opaque string.
//   - Make network calls other than through the injected Redis client.
package storage
