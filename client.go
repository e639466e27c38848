package nitter

import (
	"fmt"
	"log/slog"
	"strings"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Client is the top-level Nitter scraping client. It holds only read-only
// state and may be shared by concurrent streams.
type Client struct {
	cfg     ClientConfig
	base    string
	fetcher *fetcher
	parser  *Parser
}

// NewClient creates a fully-wired Nitter client.
func NewClient(cfg ClientConfig) (*Client, error) {
	cfg.defaults()

	base := strings.TrimRight(cfg.Instance, "/")
	if base == "" {
		return nil, fmt.Errorf("nitter instance URL is required")
	}

	transport := cfg.Transport
	if transport == nil {
		if cfg.Stealth {
			// the User-Agent must match the TLS fingerprint
			profile := browserProfile(cfg.Profile)
			if cfg.UserAgent == "" {
				cfg.UserAgent = profile.UserAgent
			}
			st, err := newStealthTransport(cfg, profile)
			if err != nil {
				return nil, err
			}
			transport = st
		} else {
			transport = newRestyTransport(cfg)
		}
	}

	if cfg.Proxy != "" {
		slog.Debug("using proxy", slog.String("proxy", stealth.MaskProxy(cfg.Proxy)))
	}

	return &Client{
		cfg:     cfg,
		base:    base,
		fetcher: newFetcher(transport, cfg),
		parser:  NewParser(),
	}, nil
}

// Instance returns the normalized instance base URL.
func (c *Client) Instance() string { return c.base }

// pageURL joins the instance, a path and a raw query string (with its "?").
func (c *Client) pageURL(path, rawQuery string) string {
	return c.base + path + rawQuery
}
