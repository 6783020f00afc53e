// Package token provides the hashing primitives used to store refresh
// tokens server-side.
//
// Presented refresh tokens are looked up by digest, never by raw value:
// - Dev/back-compat mode: SHA-256(token) when no HMAC key is configured.
// - Enforced mode: HMAC-SHA256(token, key) when TRB_TOKEN_HMAC_KEY is set.
// Output is always a 64-char hex string suitable for a unique column.
package token
