package nitter

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"time"

	stealth "github.com/anatolykoptev/go-stealth"
)

// fetcher issues page requests and retries rate-limited ones.
type fetcher struct {
	transport   Transport
	headers     map[string]string
	timeout     time.Duration
	maxAttempts int
	backoff     stealth.BackoffConfig
	sleep       func(ctx context.Context, d time.Duration) error
}

func newFetcher(transport Transport, cfg ClientConfig) *fetcher {
	return &fetcher{
		transport:   transport,
		headers:     nitterHeaders(cfg.UserAgent),
		timeout:     cfg.Timeout,
		maxAttempts: cfg.MaxAttempts,
		// JitterPct is left at zero so the schedule stays deterministic.
		backoff: stealth.BackoffConfig{
			InitialWait: cfg.BackoffInitial,
			MaxWait:     cfg.BackoffMax,
			Multiplier:  2.0,
		},
		sleep: sleepContext,
	}
}

// fetch GETs url and returns the page body.
// A 404 yields ErrPageNotFound; every other failure is a *NetworkError.
func (f *fetcher) fetch(ctx context.Context, url string) (string, error) {
	for attempt := 1; ; attempt++ {
		body, status, err := f.get(ctx, url)
		if err != nil {
			return "", &NetworkError{URL: url, Err: err}
		}

		switch {
		case status >= 200 && status < 300:
			return string(body), nil

		case status == http.StatusNotFound:
			return "", fmt.Errorf("%s: %w", url, ErrPageNotFound)

		case status == http.StatusTooManyRequests:
			if attempt >= f.maxAttempts {
				return "", &NetworkError{
					URL:    url,
					Status: status,
					Err:    fmt.Errorf("rate limited after %d attempts", attempt),
				}
			}
			delay := f.backoff.Duration(attempt - 1)
			slog.Warn("rate limited, backing off",
				slog.String("url", url),
				slog.Int("attempt", attempt),
				slog.Int("max_attempts", f.maxAttempts),
				slog.Duration("backoff", delay))
			if err := f.sleep(ctx, delay); err != nil {
				return "", &NetworkError{URL: url, Status: status, Err: err}
			}

		default:
			return "", &NetworkError{URL: url, Status: status}
		}
	}
}

// get performs one attempt bounded by the per-request timeout.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}
	return f.transport.Get(ctx, url, maps.Clone(f.headers))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
