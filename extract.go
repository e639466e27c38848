package nitter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// tweetTimeLayout is the title attribute format of a tweet's date link.
const tweetTimeLayout = "Jan 2, 2006 · 3:04 PM UTC"

// extractTweet builds a Tweet from one timeline item.
// Mandatory fields fail with a *ParseError naming the field; everything else
// degrades to its zero value.
func (p *Parser) extractTweet(s *goquery.Selection) (*Tweet, error) {
	fullName, ok := s.FindMatcher(p.m.fullName).First().Attr("title")
	if !ok {
		return nil, &ParseError{Field: "full_name"}
	}

	screenName, idStr, err := p.extractTweetLink(s)
	if err != nil {
		return nil, err
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return nil, &ParseError{Field: "id", Reason: fmt.Sprintf("invalid id %q", idStr)}
	}

	body := s.FindMatcher(p.m.body).First()
	if body.Length() == 0 {
		return nil, &ParseError{Field: "body"}
	}

	title, ok := s.FindMatcher(p.m.tweetDate).First().Attr("title")
	if !ok {
		return nil, &ParseError{Field: "time"}
	}
	createdAt, createdAtTS, err := parseTweetTime(title)
	if err != nil {
		return nil, &ParseError{Field: "time", Reason: err.Error()}
	}

	return &Tweet{
		ID:          id,
		IDStr:       idStr,
		CreatedAt:   createdAt,
		CreatedAtTS: createdAtTS,
		User: Author{
			ScreenName: screenName,
			FullName:   fullName,
		},
		FullText: body.Text(),
		Links:    p.extractLinks(body),
		Images:   p.extractImages(s),
		Retweet:  has(s, p.m.retweet),
		Reply:    has(s, p.m.reply),
		Quote:    has(s, p.m.quote),
		Pinned:   has(s, p.m.pinned),
		Stats: Stats{
			Comment: p.extractStat(s, statComment),
			Retweet: p.extractStat(s, statRetweet),
			Quote:   p.extractStat(s, statQuote),
			Heart:   p.extractStat(s, statHeart),
		},
	}, nil
}

// extractTweetLink reads the author handle and tweet id from the permalink.
func (p *Parser) extractTweetLink(s *goquery.Selection) (screenName, id string, err error) {
	href, ok := s.FindMatcher(p.m.tweetLink).First().Attr("href")
	if !ok {
		return "", "", &ParseError{Field: "screen_name"}
	}
	groups := p.m.tweetLinkRe.FindStringSubmatch(href)
	if len(groups) < 3 {
		return "", "", &ParseError{Field: "screen_name", Reason: fmt.Sprintf("unexpected permalink %q", href)}
	}
	return groups[1], groups[2], nil
}

// extractLinks returns outbound hrefs in the body; site-relative links
// (mentions, hashtags) are skipped.
func (p *Parser) extractLinks(body *goquery.Selection) []string {
	links := []string{}
	body.FindMatcher(p.m.anchor).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" || strings.HasPrefix(href, "/") {
			return
		}
		links = append(links, href)
	})
	return links
}

// extractImages rewrites attachment thumbnails to media CDN URLs.
func (p *Parser) extractImages(s *goquery.Selection) []string {
	images := []string{}
	s.FindMatcher(p.m.image).Each(func(_ int, a *goquery.Selection) {
		groups := p.m.imageRe.FindStringSubmatch(a.AttrOr("href", ""))
		if len(groups) < 2 {
			return
		}
		images = append(images, mediaBaseURL+groups[1])
	})
	return images
}

// extractStat reads one engagement counter, 0 when absent or unparsable.
func (p *Parser) extractStat(s *goquery.Selection, which stat) uint64 {
	var n uint64
	icon := p.m.statIcons[which]
	s.FindMatcher(p.m.statContainer).EachWithBreak(func(_ int, c *goquery.Selection) bool {
		if c.FindMatcher(icon).Length() == 0 {
			return true
		}
		n = parseCount(firstText(c.Get(0)))
		return false
	})
	return n
}

// parseCount parses a counter like "1,234"; anything malformed is 0.
func parseCount(text string) uint64 {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	n, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseTweetTime parses a date title and returns its RFC 1123 form and epoch seconds.
func parseTweetTime(title string) (string, int64, error) {
	t, err := time.Parse(tweetTimeLayout, title)
	if err != nil {
		return "", 0, err
	}
	t = t.UTC()
	return t.Format(time.RFC1123Z), t.Unix(), nil
}

func has(s *goquery.Selection, m cascadia.Selector) bool {
	return s.FindMatcher(m).Length() > 0
}
