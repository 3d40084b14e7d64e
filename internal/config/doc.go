// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, a scry.yaml file, a .env file, and SCRY_
// environment variables). It provides type-safe access to settings needed by
// different components while keeping configuration details separate from
// business logic.
package config
