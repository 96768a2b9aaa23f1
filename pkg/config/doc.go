// Package config handles configuration management for das.
// Values come from the embedded defaults, then the anchor's .das.toml,
// then DAS_* environment variables, then command-line overrides.
package config
