package nitter

import "time"

// ClientConfig holds all configuration for the Nitter client.
type ClientConfig struct {
	// Instance is the base URL of the Nitter instance, e.g. https://nitter.net.
	Instance string

	// Transport overrides the HTTP transport. When nil, a resty transport is
	// used, or a stealth transport if Stealth is set.
	Transport Transport

	// Proxy is an optional proxy URL for outgoing requests.
	Proxy string

	// Stealth selects the browser-fingerprinted TLS transport.
	Stealth bool

	// Profile selects one of the built-in browser profiles (TLS fingerprint
	// and matching User-Agent) for the stealth transport.
	Profile int

	// Jitter adds a short random delay before each stealth request.
	Jitter bool

	// UserAgent overrides the default desktop User-Agent.
	UserAgent string

	// Timeout bounds a single request attempt.
	Timeout time.Duration

	// MaxAttempts is the total number of tries for a rate-limited (HTTP 429) page.
	MaxAttempts int

	// BackoffInitial is the wait after the first 429; it doubles on each retry.
	BackoffInitial time.Duration

	// BackoffMax caps the wait between 429 retries.
	BackoffMax time.Duration
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.BackoffInitial == 0 {
		cfg.BackoffInitial = 2 * time.Second
	}
	if cfg.BackoffMax == 0 {
		cfg.BackoffMax = 300 * time.Second
	}
}

// StreamConfig controls what a single Timeline stream emits.
type StreamConfig struct {
	Query Query

	// Limit stops the stream after this many tweets. Zero means no limit.
	Limit int

	// MinID ends the stream at the first tweet whose id is below it. Zero disables the floor.
	MinID uint64

	// ReorderPinned moves the pinned tweet to its chronological position.
	ReorderPinned bool

	// SkipRetweets drops retweets.
	SkipRetweets bool
}
