package config

import "time"

// TimeoutConfig holds timeout settings for the HTTP server.
// These can be configured via env vars or CLI flags.
type TimeoutConfig struct {
	// Read is the timeout for reading the request, including the body.
	// Default: 15s
	Read time.Duration

	// Idle is how long keep-alive connections stay open between requests.
	// Default: 120s
	Idle time.Duration

	// Request bounds a single handler, including its database call.
	// Default: 60s
	Request time.Duration

	// Shutdown is how long in-flight requests may drain after a
	// termination signal. Default: 30s
	Shutdown time.Duration
}

// DefaultTimeoutConfig returns the default timeout configuration
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Read:     15 * time.Second,
		Idle:     120 * time.Second,
		Request:  60 * time.Second,
		Shutdown: 30 * time.Second,
	}
}
