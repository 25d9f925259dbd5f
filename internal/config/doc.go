// Package config loads and merges bot configuration from multiple sources.
//
// Precedence (highest to lowest):
//
//	CLI flags > environment > repo bot.yaml > global config file > defaults
//
// The global file is JSON at a platform-appropriate location
// (~/.config/bot/config.json on Linux). The repo file is YAML at the scan
// root and is the place for project-specific reviewer instructions.
package config
