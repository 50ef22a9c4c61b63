// Package token is the credential repository: it pins the access and
// refresh tokens to their durable storage layout. The access token lives
// under one key with a multi-day expiry horizon, typically on a mirrored
// store; the refresh token lives under a separate key on a single store
// with no expiry, relying on server-side invalidation.
//
// The repository performs no network calls and no side effects beyond
// storage I/O.
package token
