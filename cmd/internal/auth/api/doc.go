// Package authapi exposes the token lifecycle over HTTP: login, refresh and
// logout, plus the middleware that gates every protected route on a valid
// access token and an allowed role.
//
// Refresh failures deliberately collapse to one client-visible answer. The
// store knows whether a token was revoked, replaced or expired; the client is
// only told it is no longer usable.
package authapi
