// Package config loads the courtwatch configuration from a TOML file,
// falling back to built-in defaults (the standard venue set) when no file
// is present. MAX_WORKERS and DATA_DIR environment variables override the
// file, matching the deployment environments the scraper runs in.
package config
