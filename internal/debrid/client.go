// Package debrid is the Real-Debrid API client façade. It owns the
// authenticated transport session and an immutable account profile snapshot,
// and exposes the account and link-unrestriction operations.
package debrid

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"rdw/internal/domain"
	"rdw/internal/errors"
)

// DefaultBaseURL is the Real-Debrid REST API base URL.
const DefaultBaseURL = "https://api.real-debrid.com/rest/1.0"

// expirationLayout is the fixed textual datetime format of the account
// premium-expiration field.
const expirationLayout = "2006-01-02T15:04:05.000Z"

// Throttle for launching folder fan-out workers; a crude admission-control
// measure against the remote service, not a real rate limiter.
const fanOutLaunchesPerSecond = 10

// AccountProfile is a snapshot of the remote account, fetched once at client
// construction and held immutably for the client's lifetime. It is never
// refreshed automatically.
type AccountProfile struct {
	ID               int64
	Username         string
	Email            string
	AvatarURL        string
	LanguageCode     string
	LanguageName     string
	Type             string
	Premium          bool
	PremiumExpiresAt time.Time
	Points           int64
}

// Options configures client construction. Exactly one of the three modes
// applies: explicit APIToken, Username+Password, or AnonymousAccess.
type Options struct {
	BaseURL         string
	APIToken        string
	Username        string
	Password        string
	AnonymousAccess bool
}

// Client is an authenticated (or anonymous) Real-Debrid API session.
type Client struct {
	http      domain.HTTPAdapter
	baseURL   string
	token     string
	anonymous bool
	profile   AccountProfile
	launches  *rate.Limiter
	logger    *slog.Logger
	closeOnce sync.Once
}

// New constructs a client. In anonymous mode no token is resolved and only
// unauthenticated endpoints are reachable. Otherwise the token resolver is
// consulted and the account profile fetched immediately; the transport is
// closed on every construction error path.
func New(
	ctx context.Context,
	opts Options,
	httpAdapter domain.HTTPAdapter,
	tokens domain.TokenResolver,
	logger *slog.Logger,
) (*Client, error) {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		http:      httpAdapter,
		baseURL:   baseURL,
		anonymous: opts.AnonymousAccess,
		launches:  rate.NewLimiter(rate.Limit(fanOutLaunchesPerSecond), 1),
		logger:    logger,
	}

	if opts.AnonymousAccess {
		logger.DebugContext(ctx, "Opened anonymous Real-Debrid session")
		return c, nil
	}

	if opts.APIToken == "" && (opts.Username == "" || opts.Password == "") {
		c.StopSession()
		return nil, errors.ErrMissingCredentials
	}

	token, err := tokens.Resolve(ctx, opts.APIToken, opts.Username, opts.Password)
	if err != nil {
		c.StopSession()
		return nil, err
	}
	c.token = token

	profile, err := c.fetchProfile(ctx)
	if err != nil {
		c.StopSession()
		return nil, err
	}
	c.profile = *profile

	logger.InfoContext(ctx, "Opened Real-Debrid session",
		"username", c.profile.Username,
		"type", c.profile.Type)

	return c, nil
}

// StopSession closes the underlying transport. Safe to call more than once;
// a second close is a no-op.
func (c *Client) StopSession() {
	c.closeOnce.Do(func() {
		c.http.Close()
	})
}

// Profile returns the account profile snapshot taken at construction.
func (c *Client) Profile() AccountProfile { return c.profile }

// Anonymous reports whether the session is in anonymous mode.
func (c *Client) Anonymous() bool { return c.anonymous }

// userResponse is the GET /user response body.
type userResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	Type       string `json:"type"`
	Premium    int64  `json:"premium"`
	Expiration string `json:"expiration"`
	Points     int64  `json:"points"`
	Locale     string `json:"locale"`
}

func (c *Client) fetchProfile(ctx context.Context) (*AccountProfile, error) {
	endpoint := c.baseURL + "/user"

	resp, err := c.http.Get(ctx, endpoint, domain.Request{Token: c.token})
	if err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrNetwork, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError(errors.ErrInvalidAPIToken, endpoint, resp.StatusCode)
	}

	var user userResponse
	if err := json.Unmarshal(resp.Body, &user); err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrNetwork, endpoint, err)
	}

	expiresAt, err := time.Parse(expirationLayout, user.Expiration)
	if err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrNetwork, endpoint,
			fmt.Errorf("unexpected expiration format %q: %w", user.Expiration, err))
	}

	accountType := "Free"
	if user.Type == "premium" {
		accountType = "Premium"
	}

	return &AccountProfile{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		AvatarURL:        unescape(user.Avatar),
		LanguageCode:     user.Locale,
		LanguageName:     languageName(user.Locale),
		Type:             accountType,
		Premium:          accountType == "Premium",
		PremiumExpiresAt: expiresAt,
		Points:           user.Points,
	}, nil
}

// requirePremium rejects premium-only operations locally, before any network
// call, for anonymous or free-tier sessions.
func (c *Client) requirePremium() error {
	if !c.profile.Premium {
		return errors.ErrNonPremiumAccount
	}
	return nil
}

// unescape decodes percent-encoding, passing the input through untouched if
// it is not valid.
func unescape(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}
