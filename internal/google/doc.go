// Package google manages the gateway's delegated Google identity.
//
// TokenStore persists the access/refresh token pair as a JSON file and
// reports whether a credential exists at all. SessionManager owns the
// in-memory credential for the process lifetime: it refreshes the access
// token synchronously before expiry, coalesces concurrent refreshes through
// a singleflight group, and persists refreshed material back through the
// store. It implements oauth2.TokenSource so API clients built on it always
// observe a valid token.
//
// Interactive authorization (consent URL, code exchange) lives in Authorize
// and is only reached from the one-time `inboxgate auth` command.
package google
