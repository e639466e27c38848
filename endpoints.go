package nitter

import (
	"fmt"
	"strings"
)

// QueryKind selects which Nitter listing a Query reads.
type QueryKind int

const (
	QuerySearch QueryKind = iota
	QueryUserTimeline
	QueryUserTimelineWithReplies
	QueryUserMedia
	QueryUserSearch
)

// Query describes a paginated listing on a Nitter instance.
type Query struct {
	Kind   QueryKind
	Handle string
	Text   string
}

// Search queries the instance-wide tweet search.
func Search(text string) Query { return Query{Kind: QuerySearch, Text: text} }

// UserTimeline queries a user's tweets, replies excluded.
func UserTimeline(handle string) Query { return Query{Kind: QueryUserTimeline, Handle: handle} }

// UserTimelineWithReplies queries a user's tweets including replies.
func UserTimelineWithReplies(handle string) Query {
	return Query{Kind: QueryUserTimelineWithReplies, Handle: handle}
}

// UserMedia queries a user's media tab.
func UserMedia(handle string) Query { return Query{Kind: QueryUserMedia, Handle: handle} }

// UserSearch searches within a single user's tweets.
func UserSearch(handle, text string) Query {
	return Query{Kind: QueryUserSearch, Handle: handle, Text: text}
}

// route holds the path template and whether the listing takes a search term.
type route struct {
	Path     string
	Searched bool
}

// routes maps query kinds to their Nitter routes. %s is the handle.
var routes = map[QueryKind]route{
	QuerySearch:                  {Path: "/search", Searched: true},
	QueryUserTimeline:            {Path: "/%s"},
	QueryUserTimelineWithReplies: {Path: "/%s/with_replies"},
	QueryUserMedia:               {Path: "/%s/media"},
	QueryUserSearch:              {Path: "/%s/search", Searched: true},
}

// Encode returns the base path and the initial query string (with its
// leading "?", or empty) for q. A Kind outside the declared QueryKind
// constants encodes as a site-wide search.
func (q Query) Encode() (path, rawQuery string) {
	r, ok := routes[q.Kind]
	if !ok {
		r = routes[QuerySearch]
	}
	path = r.Path
	if strings.Contains(path, "%s") {
		path = fmt.Sprintf(path, q.Handle)
	}
	if r.Searched {
		rawQuery = "?f=tweets&q=" + escapeTerm(q.Text)
	}
	return path, rawQuery
}

func (q Query) String() string {
	switch q.Kind {
	case QuerySearch:
		return fmt.Sprintf("search %q", q.Text)
	case QueryUserTimeline:
		return "user @" + q.Handle
	case QueryUserTimelineWithReplies:
		return "with_replies @" + q.Handle
	case QueryUserMedia:
		return "media @" + q.Handle
	case QueryUserSearch:
		return fmt.Sprintf("user_search @%s %q", q.Handle, q.Text)
	}
	return fmt.Sprintf("query(%d)", int(q.Kind))
}

const upperHex = "0123456789ABCDEF"

// escapeTerm percent-encodes every byte that is not an ASCII letter or digit.
func escapeTerm(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}
