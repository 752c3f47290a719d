package domain

import "context"

// Credentials is a Real-Debrid account username/password pair. It is used as
// the token cache key and as input to the web authenticator, and is never
// persisted anywhere except the cache record itself.
type Credentials struct {
	Username string
	Password string
}

// TokenStore persists API tokens keyed by (username, password). Implementations
// must survive process restarts and tolerate concurrent writers with
// last-writer-wins semantics per key.
type TokenStore interface {
	// Get returns the most recently stored token for the credential pair,
	// or ok=false if none exists.
	Get(ctx context.Context, username, password string) (token string, ok bool, err error)
	// Put upserts the token for the credential pair.
	Put(ctx context.Context, token, username, password string) error
	// Clear removes the record for the credential pair, if present.
	Clear(ctx context.Context, username, password string) error
}

// Authenticator drives the undocumented Real-Debrid web-login flow: a login
// request yields a short-lived auth cookie, which is then exchanged for the
// account's long-lived API token by scraping the token-management page.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (authCookie string, err error)
	FetchToken(ctx context.Context, authCookie string) (apiToken string, err error)
	RefreshToken(ctx context.Context, authCookie string) (apiToken string, err error)
}

// TokenValidator checks a token against the live service. It reports
// valid=false for a well-formed rejection and returns an error only for
// transport-level failures.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (valid bool, err error)
}

// TokenResolver produces a usable API token from either an explicit token or
// a credential pair.
type TokenResolver interface {
	Resolve(ctx context.Context, explicitToken, username, password string) (string, error)
}

// UserAgentProvider supplies the browser User-Agent sent on web-flow requests.
// Injected so tests can substitute a deterministic value.
type UserAgentProvider interface {
	UserAgent() string
}

// PasswordReader handles secure password input from users.
type PasswordReader interface {
	ReadPassword(ctx context.Context, prompt string) (string, error)
	IsInteractive() bool
}
