// Package session implements TRB's refresh-token lifecycle.
//
// Every issued refresh token has a row in Postgres, stored by hash. Rotation
// replaces the presented token with a fresh one and links the old row to its
// replacement, forming a chain (the token family). Presenting an
// already-replaced token is treated as theft: the whole family is revoked
// before the caller sees an error.
//
// Access tokens are signed JWTs and are verified statelessly; this package
// never consults the store for them.
//
// Transport (HTTP) integration is intentionally out of scope here.
package session
