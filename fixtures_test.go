package nitter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// fixtureTweet renders a Nitter timeline item close to what instances serve.
type fixtureTweet struct {
	ID      uint64
	Handle  string
	Name    string
	Time    time.Time
	Body    string
	Pinned  bool
	Retweet bool
	Reply   bool
	Extra   string    // raw HTML placed after the body (attachments, quotes)
	Stats   [4]string // comment, retweet, quote, heart; empty omits the stat
	Class   string    // extra classes on the timeline-item div
}

var fixtureBase = time.Date(2021, time.January, 5, 15, 4, 0, 0, time.UTC)

func (f fixtureTweet) html() string {
	handle := f.Handle
	if handle == "" {
		handle = "jack"
	}
	name := f.Name
	if name == "" {
		name = "Jack Example"
	}
	when := f.Time
	if when.IsZero() {
		when = fixtureBase
	}
	body := f.Body
	if body == "" {
		body = fmt.Sprintf("tweet %d", f.ID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="timeline-item %s" data-username="%s">`, f.Class, handle)
	fmt.Fprintf(&b, `<a class="tweet-link" href="/%s/status/%d#m"></a>`, handle, f.ID)
	b.WriteString(`<div class="tweet-body"><div>`)
	if f.Pinned {
		b.WriteString(`<div class="pinned"><span><span class="icon-pin"></span> Pinned Tweet</span></div>`)
	}
	if f.Retweet {
		b.WriteString(`<div class="retweet-header"><span><span class="icon-retweet"></span> someone retweeted</span></div>`)
	}
	b.WriteString(`</div><div class="tweet-header"><div class="tweet-name-row"><div class="fullname-and-username">`)
	fmt.Fprintf(&b, `<a class="fullname" href="/%s" title="%s">%s</a>`, handle, name, name)
	fmt.Fprintf(&b, `<a class="username" href="/%s" title="@%s">@%s</a>`, handle, handle, handle)
	b.WriteString(`</div>`)
	fmt.Fprintf(&b, `<span class="tweet-date"><a href="/%s/status/%d#m" title="%s">1h</a></span>`,
		handle, f.ID, when.UTC().Format(tweetTimeLayout))
	b.WriteString(`</div></div>`)
	if f.Reply {
		b.WriteString(`<div class="replying-to">Replying to <a href="/someone">@someone</a></div>`)
	}
	fmt.Fprintf(&b, `<div class="tweet-content media-body" dir="auto">%s</div>`, body)
	b.WriteString(f.Extra)
	b.WriteString(`<div class="tweet-stats">`)
	icons := [4]string{"icon-comment", "icon-retweet", "icon-quote", "icon-heart"}
	for i, v := range f.Stats {
		if v == "" {
			continue
		}
		fmt.Fprintf(&b, `<span class="tweet-stat"><div class="icon-container"><span class="%s" title=""></span> %s</div></span>`, icons[i], v)
	}
	b.WriteString(`</div></div></div>`)
	return b.String()
}

// fixturePage wraps items into a timeline page. An empty cursor means no
// "load more" link.
func fixturePage(cursor string, items ...fixtureTweet) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><title>nitter</title></head><body><div class="container"><div class="timeline">`)
	b.WriteString(`<div class="timeline-item show-more"><a href="?cursor=NEWEST">Load newest</a></div>`)
	for _, it := range items {
		b.WriteString(it.html())
	}
	if cursor != "" {
		fmt.Fprintf(&b, `<div class="show-more"><a href="%s">Load more</a></div>`, cursor)
	}
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

const protectedPage = `<html><body><div class="timeline-container">
<div class="timeline-protected"><h2>This account's tweets are protected.</h2>
<p>Only confirmed followers have access to @secret's tweets.</p></div></div></body></html>`

const suspendedPage = `<html><body><div class="error-panel"><span>User "gone" has been suspended</span></div></body></html>`

const notFoundPage = `<html><body><div class="error-panel"><span>User "nobody" not found</span></div></body></html>`

// fakeResponse is one scripted transport reply.
type fakeResponse struct {
	status int
	body   string
	err    error
}

// fakeTransport replays scripted responses per URL; the last response for a
// URL repeats once the script runs out.
type fakeTransport struct {
	mu      sync.Mutex
	script  map[string][]fakeResponse
	calls   []string
	headers []map[string]string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{script: map[string][]fakeResponse{}}
}

func (f *fakeTransport) on(url string, responses ...fakeResponse) *fakeTransport {
	f.script[url] = append(f.script[url], responses...)
	return f
}

func (f *fakeTransport) page(url, body string) *fakeTransport {
	return f.on(url, fakeResponse{status: 200, body: body})
}

func (f *fakeTransport) Get(ctx context.Context, url string, headers map[string]string) ([]byte, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	f.headers = append(f.headers, headers)

	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	queue, ok := f.script[url]
	if !ok || len(queue) == 0 {
		return []byte("no such page"), 404, nil
	}
	r := queue[0]
	if len(queue) > 1 {
		f.script[url] = queue[1:]
	}
	if r.err != nil {
		return nil, 0, r.err
	}
	return []byte(r.body), r.status, nil
}

func (f *fakeTransport) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == url {
			n++
		}
	}
	return n
}
