package domain

import "context"

// Request carries the per-call options the transport supports: query
// parameters, extra headers, cookies, and an optional bearer token.
type Request struct {
	Query   map[string]string
	Headers map[string]string
	Cookies map[string]string
	Token   string
}

// Response is a fully-read HTTP response. Bodies on the Real-Debrid API are
// small, so the adapter drains them eagerly and callers never manage
// io.ReadCloser lifetimes.
type Response struct {
	StatusCode int
	Body       []byte
}

// HTTPAdapter defines the interface for outbound HTTP operations. The
// implementation must not follow redirects: the web-login and token-page
// endpoints signal state through redirect responses, and those have to be
// observable by the caller.
type HTTPAdapter interface {
	Get(ctx context.Context, url string, req Request) (*Response, error)
	PostForm(ctx context.Context, url string, form map[string]string, req Request) (*Response, error)
	Close()
}
