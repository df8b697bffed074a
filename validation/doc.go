// Package validation provides struct validation for the GradLink client core
// built on go-playground/validator.
//
// It is used for configuration checks and for validating identity payloads
// returned by the remote API before they are committed to the session store.
// Failures are returned as *errors.AppError with per-field details.
package validation
