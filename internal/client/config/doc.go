// Package config loads runtime configuration for the book review CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or
//     $BOOKREVIEW_CONFIG.
//  3. BOOKREVIEW_* environment variables (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the API server
//	-d string     local sqlite storage file
//	-t duration   request timeout
//	-l string     log level
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "http://localhost:8080",
//	  "storage_path": "bookreview.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "min_rating": 0.5,
//	  "search_rate_per_second": 2
//	}
package config
