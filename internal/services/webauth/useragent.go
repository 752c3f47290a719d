package webauth

import "math/rand/v2"

// browserAgents is a small pool of current, syntactically valid browser
// User-Agent strings. The login endpoint rejects obviously non-browser
// clients, so each web-flow request picks one at random.
//
//nolint:gochecknoglobals // static UA pool shared by all providers
var browserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:126.0) Gecko/20100101 Firefox/126.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36 Edg/124.0.2478.97",
}

// RandomAgents picks a random browser User-Agent per request.
type RandomAgents struct{}

// UserAgent returns a randomly chosen browser User-Agent string.
func (RandomAgents) UserAgent() string {
	return browserAgents[rand.IntN(len(browserAgents))]
}

// StaticAgent always returns itself. Used in tests for determinism.
type StaticAgent string

// UserAgent returns the fixed agent string.
func (s StaticAgent) UserAgent() string { return string(s) }
