// Package config provides centralized configuration management for the BPS
// table processor. It handles loading configuration from multiple sources,
// validation, and the single source of truth for file system paths.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (config.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BPS_* for namespacing:
//
//	BPS_LOGGING_LEVEL=debug
//	BPS_PATHS_DATA_DIR=/srv/bps/data
//	BPS_PROCESSING_SENTINEL=NA
//
// BPS_CONFIG_FILE points at an explicit config file; otherwise the usual
// locations (config.yaml, configs/config.yaml) are probed.
package config
