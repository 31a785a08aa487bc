// Package config provides YAML-based configuration loading for the
// BB-Bounce server and CLI.
package config

import "time"

// Config contains all configuration for the server.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Submission SubmissionConfig `yaml:"submission"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Store      StoreConfig      `yaml:"store"`
}

// ServerConfig defines the HTTP listener and frontend-serving parameters.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	StaticDir      string `yaml:"static_dir"`
	CORSOrigin     string `yaml:"cors_origin"`
	ClientIPHeader string `yaml:"client_ip_header"` // e.g. CF-Connecting-IP behind Cloudflare
	Development    bool   `yaml:"development"`
}

// SubmissionConfig defines score-submission integrity parameters.
type SubmissionConfig struct {
	// Secret is the shared token a client must present to submit a score.
	// The SCORE_SECRET environment variable overrides it.
	Secret string `yaml:"secret"`

	// WindowSeconds is the per-identity duplicate-submission window.
	WindowSeconds int `yaml:"window_seconds"`
}

// RateLimitConfig defines per-IP request throttling.
type RateLimitConfig struct {
	SubmitPerMinute int `yaml:"submit_per_minute"`
	FetchPerMinute  int `yaml:"fetch_per_minute"`
}

// StoreConfig defines the score database location and query deadline.
type StoreConfig struct {
	Path           string `yaml:"path"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Window returns the duplicate-submission window as a duration.
func (c SubmissionConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// Timeout returns the store query deadline as a duration.
func (c StoreConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
