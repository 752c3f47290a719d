// Package http provides the outbound HTTP adapter used by all rdw services.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"rdw/internal/domain"
)

const (
	// DefaultTimeout is the fixed per-request timeout applied to every call.
	DefaultTimeout = 10 * time.Second

	// Rate limiting configuration.
	rateLimitRequestsPerSecond = 10
	rateLimitBurst             = 20
)

// Adapter is an HTTP client adapter using resty with rate limiting.
//
// Redirects are never followed: the Real-Debrid login and token endpoints
// answer with redirects on certain auth states, and those must surface as-is.
// No automatic retries are configured; a transport failure propagates
// immediately to the caller.
type Adapter struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewAdapter creates a new HTTP adapter with the given per-request timeout.
// Rate limit: 10 requests per second with burst of 20.
func NewAdapter(timeout time.Duration, logger *slog.Logger) *Adapter {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	// Surface redirect responses instead of following them.
	client.GetClient().CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	limiter := rate.NewLimiter(rate.Limit(rateLimitRequestsPerSecond), rateLimitBurst)

	// Add rate limiting middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	// Add logging middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return &Adapter{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

// Get performs a GET request.
func (a *Adapter) Get(ctx context.Context, url string, req domain.Request) (*domain.Response, error) {
	resp, err := a.newRequest(ctx, req).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GET request: %w", err)
	}
	return &domain.Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// PostForm performs a POST request with a form-encoded body.
func (a *Adapter) PostForm(
	ctx context.Context,
	url string,
	form map[string]string,
	req domain.Request,
) (*domain.Response, error) {
	resp, err := a.newRequest(ctx, req).SetFormData(form).Post(url)
	if err != nil {
		return nil, fmt.Errorf("failed to execute POST request: %w", err)
	}
	return &domain.Response{StatusCode: resp.StatusCode(), Body: resp.Body()}, nil
}

// Close releases idle connections held by the underlying transport. Safe to
// call more than once.
func (a *Adapter) Close() {
	a.client.GetClient().CloseIdleConnections()
}

// SetRateLimit allows configuring the rate limiter after creation.
func (a *Adapter) SetRateLimit(requestsPerSecond float64, burst int) {
	a.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (a *Adapter) newRequest(ctx context.Context, req domain.Request) *resty.Request {
	r := a.client.R().SetContext(ctx)
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	for name, value := range req.Cookies {
		r.SetCookie(&http.Cookie{Name: name, Value: value})
	}
	if req.Token != "" {
		r.SetAuthToken(req.Token)
	}
	return r
}
