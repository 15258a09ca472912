// Package config loads and validates the tool configuration from a YAML
// file, with environment variable overrides applied on top.
package config
