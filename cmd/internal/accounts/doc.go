// Package accounts exposes admin-side account management over HTTP: create,
// list, inspect, update and deactivate. Deactivation immediately revokes the
// account's refresh tokens; outstanding access tokens age out at exp.
package accounts
