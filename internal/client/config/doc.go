// Package config loads runtime configuration for the recipes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. RECIPES_* environment variables, falling back to a .env file in the
//     working directory.
//  3. Optional JSON file selected via flags: -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     API base URL
//	-d string     SQLite database path
//	-t duration   request timeout
//	-l string     log level
//
// # JSON schema
//
// Every key is optional. request_timeout is a timex.Duration, so it can be a
// string like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://tisoft.cz/recepty/backend/public/api",
//	  "storage_url": "https://tisoft.cz/recepty/backend/storage/app/public",
//	  "app_base_url": "https://tisoft.cz/recepty",
//	  "database_path": "recipes.db",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "export": {"format": "yaml", "bucket": "recipes", "endpoint": "http://localhost:9000"}
//	}
package config
