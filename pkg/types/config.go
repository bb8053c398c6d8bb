// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by commands that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "eds-records/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// NormalizeConfig holds settings for record normalization.
type NormalizeConfig struct {
	// RestrictedTitle replaces the title of records whose title is hidden
	// from guest sessions. Empty means the built-in placeholder.
	RestrictedTitle string `json:"restricted_title,omitempty" yaml:"restricted_title,omitempty"`

	// Workers bounds concurrent record construction for a result list
	// (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// FetchConfig holds settings for fetching raw results over HTTP.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// SecretsDir holds token files sent as request headers.
	SecretsDir string `json:"secrets_dir" yaml:"secrets_dir"`
}

// IndexConfig holds settings for the local record index.
type IndexConfig struct {
	// Path is the SQLite database file (default "eds-records.db").
	Path string `json:"path" yaml:"path"`

	// MaxResults caps search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP service.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// AllowOrigins lists CORS origins; empty allows all.
	AllowOrigins []string `json:"allow_origins,omitempty" yaml:"allow_origins,omitempty"`

	// MaxBodyBytes limits the size of a posted raw result (default 8 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`
}
