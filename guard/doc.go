// Package guard decides whether a protected view may render. Decisions are
// gated on session bootstrap completion so that a persisted login is never
// mistaken for an anonymous visit during startup.
package guard
