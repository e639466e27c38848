package nitter

import stealth "github.com/anatolykoptev/go-stealth"

// defaultUserAgent is the User-Agent sent when ClientConfig.UserAgent is empty.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// preferenceCookie blanks Nitter's link-replacement preferences so tweet
// bodies keep their twitter.com, youtube.com and reddit.com links unrewritten.
const preferenceCookie = "replaceTwitter=; replaceYouTube=; replaceReddit="

// nitterHeaders returns the headers sent with every page request.
func nitterHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	h := map[string]string{
		"cookie":          preferenceCookie,
		"user-agent":      userAgent,
		"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"accept-language": "en-US,en;q=0.9",
	}
	if ch := stealth.ClientHintsHeaders(userAgent); ch != nil {
		for k, v := range ch {
			h[k] = v
		}
	}
	return h
}

// nitterHeaderOrder is the header order used by the stealth transport.
var nitterHeaderOrder = []string{
	"sec-ch-ua",
	"sec-ch-ua-mobile",
	"sec-ch-ua-platform",
	"user-agent",
	"accept",
	"accept-language",
	"accept-encoding",
	"cookie",
}
