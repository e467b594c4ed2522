// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Environment variables (and a .env file, when present) override the feed
// source, snapshot path, timezone, server port and log level. Several feeds
// may be listed and selected by name.
package config
