package nitter

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// matchers is the read-only set of selectors and patterns the parser uses.
// Built once per Parser and shared by every page it parses.
type matchers struct {
	// page level
	timelineItem cascadia.Selector
	quoteContent cascadia.Selector
	protected    cascadia.Selector
	errorPanel   cascadia.Selector
	mainTweet    cascadia.Selector
	cursorLink   cascadia.Selector

	// tweet level
	fullName      cascadia.Selector
	tweetLink     cascadia.Selector
	tweetDate     cascadia.Selector
	body          cascadia.Selector
	anchor        cascadia.Selector
	image         cascadia.Selector
	retweet       cascadia.Selector
	reply         cascadia.Selector
	quote         cascadia.Selector
	pinned        cascadia.Selector
	statContainer cascadia.Selector
	statIcons     [statCount]cascadia.Selector

	tweetLinkRe *regexp.Regexp
	imageRe     *regexp.Regexp
}

type stat int

const (
	statComment stat = iota
	statRetweet
	statQuote
	statHeart
	statCount
)

func newMatchers() *matchers {
	return &matchers{
		timelineItem: cascadia.MustCompile(".timeline-item:not(.show-more):not(.unavailable):not(.threadunavailable)"),
		quoteContent: cascadia.MustCompile(".quote > *:not(.quote-link)"),
		protected:    cascadia.MustCompile("div.timeline-protected"),
		errorPanel:   cascadia.MustCompile("div.error-panel"),
		mainTweet:    cascadia.MustCompile("div.main-tweet > .timeline-item"),
		cursorLink:   cascadia.MustCompile(".show-more:not(.timeline-item) a"),

		fullName:      cascadia.MustCompile("a.fullname"),
		tweetLink:     cascadia.MustCompile(".tweet-date > a"),
		tweetDate:     cascadia.MustCompile("span.tweet-date a"),
		body:          cascadia.MustCompile(".tweet-content"),
		anchor:        cascadia.MustCompile("a"),
		image:         cascadia.MustCompile(".attachment.image a.still-image"),
		retweet:       cascadia.MustCompile(".retweet-header"),
		reply:         cascadia.MustCompile(".replying-to"),
		quote:         cascadia.MustCompile(".quote"),
		pinned:        cascadia.MustCompile(".pinned"),
		statContainer: cascadia.MustCompile(".tweet-stat > .icon-container"),
		statIcons: [statCount]cascadia.Selector{
			statComment: cascadia.MustCompile(".icon-comment"),
			statRetweet: cascadia.MustCompile(".icon-retweet"),
			statQuote:   cascadia.MustCompile(".icon-quote"),
			statHeart:   cascadia.MustCompile(".icon-heart"),
		},

		tweetLinkRe: regexp.MustCompile(`^/(\w+)/status/(\d+)`),
		imageRe:     regexp.MustCompile(`^/pic/\w+/media%2F([\w\-]+\.\w+)$`),
	}
}

// mediaBaseURL is where attachment thumbnails are rewritten to.
const mediaBaseURL = "https://pbs.twimg.com/media/"

// firstText returns the first non-blank text node under n, depth first.
func firstText(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		if strings.TrimSpace(n.Data) != "" {
			return n.Data
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := firstText(c); t != "" {
			return t
		}
	}
	return ""
}
