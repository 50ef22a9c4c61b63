// Package jwt inspects access tokens client-side. The client never holds
// the signing key, so claims are decoded without verification and used
// only for local hints: showing the logged-in identity and probing expiry
// before a round-trip. Authorization decisions never depend on this
// package; the server re-validates every request.
package jwt
