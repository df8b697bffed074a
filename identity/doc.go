// Package identity keeps the in-memory session synchronized with the
// authoritative user record on the server. It periodically re-fetches the
// profile, applies it last-write-wins, and tears the session down when the
// server reports the credentials are no longer valid.
package identity
