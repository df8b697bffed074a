// Package errors provides the unified error type for the GradLink client core.
//
// Every failure surfaced to callers is an *AppError carrying a machine-readable
// code, a user-presentable message, and a retryable flag so the UI layer can
// decide whether to offer a retry action. Errors wrap their cause and work with
// the standard errors.Is/errors.As helpers.
//
// The code set mirrors the failure taxonomy of the client: corrupt persisted
// state, invalid identity payloads, authentication rejection, and transient
// transport failures.
package errors
