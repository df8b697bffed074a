// Package storage provides the string key/value stores backing client
// persistence.
//
// Two kinds of store exist, mirroring a browser's storage model:
//
//   - durable: survives process restarts (file-backed). Holds the credential
//     entries "token" and "user".
//   - ephemeral: process-scoped only (in-memory). Holds one-shot markers such
//     as "just_logged_out".
//
// Backends register themselves with RegisterFactory and are selected by
// provider name in Config, so tests can swap the file store for the memory
// store without touching callers.
package storage
