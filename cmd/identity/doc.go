// Package identity implements TRB's account foundation: the security
// principal (account + linked professional profile), the closed role set,
// password hashing, and credential verification.
//
// The auth core reads accounts through this package; business modules own
// their entities elsewhere.
package identity
