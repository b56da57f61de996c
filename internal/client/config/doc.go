// Package config loads runtime configuration for the firemap CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-g string   OpenCage geocoder key
//	-d string   local SQLite session database
//	-o string   gallery download directory
//	-l string   log level
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// Durations accept either strings like "30s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://firefighter.a1professionals.net/api/v1/",
//	  "geocoder_url": "https://api.opencagedata.com/geocode/v1/json",
//	  "geocoder_key": "...",
//	  "database_path": "firemap.db",
//	  "gallery_dir": "gallery",
//	  "log_level": "info",
//	  "request_timeout": "30s"
//	}
package config
