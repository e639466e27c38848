package nitter

// Author identifies the account that posted a tweet.
type Author struct {
	ScreenName string `json:"screen_name"`
	FullName   string `json:"full_name"`
}

// Stats holds the best-effort engagement counters shown under a tweet.
type Stats struct {
	Comment uint64 `json:"comment"`
	Retweet uint64 `json:"retweet"`
	Quote   uint64 `json:"quote"`
	Heart   uint64 `json:"heart"`
}

// Tweet represents a single timeline item scraped from a Nitter page.
type Tweet struct {
	ID          uint64   `json:"id"`
	IDStr       string   `json:"id_str"`
	CreatedAt   string   `json:"created_at"`    // RFC 1123 with numeric zone, always +0000
	CreatedAtTS int64    `json:"created_at_ts"` // UTC epoch seconds
	User        Author   `json:"user"`
	FullText    string   `json:"full_text"`
	Images      []string `json:"images"`
	Links       []string `json:"links"`
	Retweet     bool     `json:"retweet"`
	Reply       bool     `json:"reply"`
	Quote       bool     `json:"quote"`
	Pinned      bool     `json:"pinned"`
	Stats       Stats    `json:"stats"`
}
