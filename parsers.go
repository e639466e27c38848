package nitter

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	suspendedText = "has been suspended"
	notFoundText  = "not found"
)

// Parser turns Nitter HTML pages into tweets. It is safe for concurrent use.
type Parser struct {
	m *matchers
}

// NewParser creates a Parser with its selectors compiled.
func NewParser() *Parser {
	return &Parser{m: newMatchers()}
}

// ParsePage parses one timeline page into its tweets and the cursor of the
// next page. Inaccessible accounts yield ErrProtected, ErrSuspended or
// ErrNotFound before any tweet is extracted.
func (p *Parser) ParsePage(page string) ([]*Tweet, Cursor, error) {
	doc, err := p.document(page)
	if err != nil {
		return nil, EndCursor(), err
	}
	if err := p.accountState(doc.Selection); err != nil {
		return nil, EndCursor(), err
	}

	p.stripQuotes(doc.Selection)

	var tweets []*Tweet
	var extractErr error
	doc.FindMatcher(p.m.timelineItem).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t, err := p.extractTweet(s)
		if err != nil {
			extractErr = err
			return false
		}
		tweets = append(tweets, t)
		return true
	})
	if extractErr != nil {
		return nil, EndCursor(), extractErr
	}

	return tweets, p.cursor(doc.Selection), nil
}

// ParseSingle parses a tweet permalink page and returns its main tweet.
// The cursor is always End.
func (p *Parser) ParseSingle(page string) (*Tweet, Cursor, error) {
	doc, err := p.document(page)
	if err != nil {
		return nil, EndCursor(), err
	}
	if err := p.accountState(doc.Selection); err != nil {
		return nil, EndCursor(), err
	}

	p.stripQuotes(doc.Selection)

	main := doc.FindMatcher(p.m.mainTweet).First()
	if main.Length() == 0 {
		return nil, EndCursor(), &ParseError{Field: "main_tweet"}
	}
	t, err := p.extractTweet(main)
	if err != nil {
		return nil, EndCursor(), err
	}
	return t, EndCursor(), nil
}

func (p *Parser) document(page string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, &ParseError{Field: "document", Reason: err.Error()}
	}
	return doc, nil
}

// accountState checks, in order, the protected marker, a suspended error
// panel and a not-found error panel.
func (p *Parser) accountState(root *goquery.Selection) error {
	if has(root, p.m.protected) {
		return ErrProtected
	}
	panel := root.FindMatcher(p.m.errorPanel).First()
	if panel.Length() == 0 {
		return nil
	}
	text := firstText(panel.Get(0))
	switch {
	case strings.Contains(text, suspendedText):
		return ErrSuspended
	case strings.Contains(text, notFoundText):
		return ErrNotFound
	}
	return nil
}

// stripQuotes removes everything inside embedded quotes except their
// permalink, so quoted text, links and images stay out of the outer tweet.
func (p *Parser) stripQuotes(root *goquery.Selection) {
	root.FindMatcher(p.m.quoteContent).Remove()
}

// cursor reads the last "load more" link of the page.
func (p *Parser) cursor(root *goquery.Selection) Cursor {
	href, ok := root.FindMatcher(p.m.cursorLink).Last().Attr("href")
	if !ok || href == "" {
		return EndCursor()
	}
	return MoreCursor(href)
}
