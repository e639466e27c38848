package nitter

import (
	"context"
	"fmt"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/go-resty/resty/v2"
)

// Transport performs a single HTTP GET and returns the raw body and status.
// Non-2xx statuses are not errors at this level.
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string) (body []byte, status int, err error)
}

// restyTransport is the default Transport. Cancelling ctx aborts the request.
type restyTransport struct {
	client *resty.Client
}

func newRestyTransport(cfg ClientConfig) *restyTransport {
	client := resty.New()
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}
	return &restyTransport{client: client}
}

func (t *restyTransport) Get(ctx context.Context, url string, headers map[string]string) ([]byte, int, error) {
	res, err := t.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, 0, err
	}
	return res.Body(), res.StatusCode(), nil
}

// stealthTransport sends requests through a browser-fingerprinted TLS client.
// A cancelled request returns at once; the underlying call is abandoned.
type stealthTransport struct {
	client *stealth.BrowserClient
	jitter bool
}

// browserProfile picks a built-in browser profile by index, wrapping around.
func browserProfile(idx int) stealth.BrowserProfile {
	n := len(stealth.BuiltinProfiles)
	return stealth.BuiltinProfiles[((idx%n)+n)%n]
}

func newStealthTransport(cfg ClientConfig, profile stealth.BrowserProfile) (*stealthTransport, error) {
	opts := []stealth.ClientOption{
		stealth.WithProfile(profile.TLSProfile),
		stealth.WithHeaderOrder(nitterHeaderOrder),
	}
	if cfg.Proxy != "" {
		opts = append(opts, stealth.WithProxy(cfg.Proxy))
	}
	if secs := int(cfg.Timeout / time.Second); secs > 0 {
		opts = append(opts, stealth.WithTimeout(secs))
	}
	bc, err := stealth.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("stealth client: %w", err)
	}
	return &stealthTransport{client: bc, jitter: cfg.Jitter}, nil
}

func (t *stealthTransport) Get(ctx context.Context, url string, headers map[string]string) ([]byte, int, error) {
	if t.jitter {
		if err := stealth.DefaultJitter.Sleep(ctx); err != nil {
			return nil, 0, err
		}
	}

	body, _, status, err := t.client.DoWithHeaderOrderCtx(ctx, "GET", url, headers, nil, nitterHeaderOrder)
	return body, status, err
}
