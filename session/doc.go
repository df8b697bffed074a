// Package session holds the authenticated identity of the GradLink client.
//
// The Store is the single source of truth for the current user record, bearer
// token, staleness timestamp, and pending post-login redirect path. All
// mutation happens through a fixed set of named actions serialized behind one
// mutex; no component touches the fields directly. Reads return value
// snapshots, so a caller can never observe a half-applied update.
//
// The Bootstrapper restores credentials from durable storage exactly once per
// process. A corrupt persisted record is wiped rather than surfaced: a single
// bad entry must never permanently lock the user out of re-authenticating.
package session
