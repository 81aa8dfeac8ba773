// Package config loads configuration structs from environment variables
// using `env` field tags, with optional .env file support for local
// development.
//
// Load parses each configuration type exactly once per process and caches
// the result, so independent components can safely call Load for the same
// type without duplicating work or racing. MustLoad panics on failure and is
// meant for configuration the process cannot run without.
//
// # Usage
//
//	type SessionConfig struct {
//		Namespace string `env:"ASKELIO_SESSION_NAMESPACE" envDefault:"default"`
//	}
//
//	var cfg SessionConfig
//	config.MustLoad(&cfg)
package config
