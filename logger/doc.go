// Package logger provides structured logging for the GradLink client core
// using zerolog.
//
// It supports JSON and console output formats, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Usage
//
//	log := logger.Get("session")
//	log.Info("credentials restored", logger.Fields(logger.FieldUserID, user.ID))
package logger
