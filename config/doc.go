// Package config loads service configuration from YAML files, .env files,
// and environment variables, in that order of precedence (environment wins).
//
// LoadConfig searches standard locations relative to the working directory
// (./cmd/<service>/config.yml, ./config.yml, .env) unless explicit paths
// are given, then unmarshals the merged result into the caller's struct.
package config
