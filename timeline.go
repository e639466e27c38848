package nitter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Timeline starts a new stream for cfg. Nothing is fetched until the first
// call to Next.
func (c *Client) Timeline(cfg StreamConfig) *Stream {
	return newStream(c, cfg)
}

// Collect drains a stream for cfg and returns its tweets with the final status.
// On an operational failure the tweets read so far are returned with the error.
func (c *Client) Collect(ctx context.Context, cfg StreamConfig) ([]*Tweet, Status, error) {
	s := c.Timeline(cfg)
	var tweets []*Tweet
	for t, err := range s.All(ctx) {
		if err != nil {
			return tweets, s.Status(), err
		}
		tweets = append(tweets, t)
	}
	return tweets, s.Status(), nil
}

// GetTweet fetches a single tweet from its permalink page.
func (c *Client) GetTweet(ctx context.Context, handle, id string) (*Tweet, error) {
	page, err := c.fetcher.fetch(ctx, c.pageURL(tweetPath(handle, id), ""))
	if err != nil {
		if errors.Is(err, ErrPageNotFound) {
			return nil, fmt.Errorf("tweet %s/%s: %w", handle, id, ErrNotFound)
		}
		return nil, fmt.Errorf("GetTweet: %w", err)
	}
	t, _, err := c.parser.ParseSingle(page)
	if err != nil {
		return nil, fmt.Errorf("parse tweet %s/%s: %w", handle, id, err)
	}
	return t, nil
}

func tweetPath(handle, id string) string {
	return "/" + url.PathEscape(handle) + "/status/" + url.PathEscape(id)
}
