// Package config loads, normalizes, and validates the aircast TOML
// configuration.
package config
