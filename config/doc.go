// Package config loads and validates the GradLink client configuration.
//
// Configuration is layered: a config.yml file provides the base, a .env file
// and process environment variables override it. Both files are discovered in
// standard locations or passed explicitly.
//
// # Usage
//
//	cfg, err := config.Load()
//
// Environment variables use underscore-separated paths
// (e.g. API_BASE_URL, LOGGING_LEVEL).
package config
