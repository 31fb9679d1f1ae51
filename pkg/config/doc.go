// Package config provides configuration management for Switchyard.
//
// This package handles loading, validating, and defaulting configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Service Table
//
// The services list is the gateway's route table. It is ordered: a request is
// served by the first service whose path prefix matches, so more specific
// prefixes must be listed before general ones. ShadowWarnings reports entries
// that can never match.
//
//	services:
//	  - name: openai
//	    path: /openai/v1/chat/completions
//	    type: passthrough
//	    target_service: https://api.openai.com/v1/chat/completions
//	    credential: openai-api-key
//	  - name: llama
//	    path: /llama/v1
//	    type: local_inference
//	    model: llama-2-7b-chat
//	  - name: echo
//	    path: /echo
//	    type: echo
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SWITCHYARD_SECTION_FIELD,
// for example SWITCHYARD_PROXY_LISTEN_ADDRESS or SWITCHYARD_FORWARDER_TIMEOUT.
// Environment variables always take precedence over file-based configuration.
// Credentials are never part of the file; they are resolved by name from the
// configured secret sources at request time.
//
// # Validation
//
// All configuration is validated during loading and every problem is
// reported at once in a ValidationError.
package config
