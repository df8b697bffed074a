// Package api is the HTTP client for the GradLink REST API.
//
// It wraps net/http with base URL resolution, bearer authentication sourced
// from the session store, TLS configuration, status-code error classification,
// per-request IDs, and a trace span per request. Typed generic helpers
// (Get, Post, Patch, Delete) decode JSON responses.
//
// The concrete endpoints consumed by the client core — login, authoritative
// identity fetch, profile update, image upload — live in endpoints.go.
package api
