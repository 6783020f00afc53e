// Package jwt issues and verifies TRB's signed tokens.
//
// Access tokens are short-lived and self-contained: they carry the full
// identity envelope (subject, email, role, professional id) and are verified
// statelessly per request: signature and expiry only, no store lookup.
//
// Refresh tokens are also signed but carry only the subject; their real state
// lives in the session store, which tracks every issued refresh token and its
// rotation chain.
package jwt
