// Package config loads runtime configuration for the ReState CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see the env tags on Config).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-e string   Appwrite endpoint
//	-p string   Appwrite project id
//	-d string   Appwrite database id
//	-l int      login timeout (seconds)
//
// # JSON schema
//
// Durations are strings like "2m" or integer nanoseconds. Keys left out keep
// their previous value:
//
//	{
//	  "endpoint": "https://cloud.appwrite.io/v1",
//	  "project_id": "restate",
//	  "database_id": "main",
//	  "properties_collection_id": "properties",
//	  "agents_collection_id": "agents",
//	  "login_timeout": "2m",
//	  "session_db": "/home/me/.restate.db"
//	}
//
// A missing endpoint or project is not fatal at load time: Validate reports
// it, the caller logs it, and backend calls fail when made.
package config
