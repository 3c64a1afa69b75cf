// Package config loads runtime configuration for the cinema client CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-e string   GraphQL gateway endpoint URL
//	-d string   path of the local state database
//	-p int      list page size
//	-t int      request timeout in seconds (0 keeps the transport default)
//	-i int      online status check interval in seconds
//	-l string   log level (debug, info, warn, error)
//	-L string   collation locale for text sorts (BCP 47, e.g. "en", "de")
//	-m string   metrics listen address; empty disables the endpoint
//
// # JSON schema
//
//	{
//	  "graphql_endpoint": "http://localhost:4000/graphql",
//	  "state_db_path": "cinema.db",
//	  "page_size": 12,
//	  "request_timeout_seconds": 0,
//	  "online_check_interval_seconds": 5,
//	  "log_level": "info",
//	  "locale": "en",
//	  "metrics_addr": ""
//	}
//
// Keys absent from the file keep their previous value.
package config
