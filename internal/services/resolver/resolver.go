// Package resolver orchestrates the token cache and the web authenticator to
// produce a usable Real-Debrid API token.
package resolver

import (
	"context"
	"log/slog"

	"rdw/internal/domain"
	"rdw/internal/errors"
)

// Resolver resolves API tokens from explicit values or cached/derived
// credentials.
type Resolver struct {
	cache     domain.TokenStore
	auth      domain.Authenticator
	validator domain.TokenValidator
	logger    *slog.Logger
}

// New creates a new token resolver.
func New(
	cache domain.TokenStore,
	auth domain.Authenticator,
	validator domain.TokenValidator,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		cache:     cache,
		auth:      auth,
		validator: validator,
		logger:    logger,
	}
}

// Resolve returns a usable API token.
//
// An explicit token is returned unchanged with no cache interaction or
// validation; the caller asserts its validity and the account fetch will
// surface invalidity. Otherwise both username and password are required. A
// cached token is validated live before reuse; on a cache miss or an
// invalidated cached token, the web flow runs once and the fresh token is
// written back to the cache under the same credential pair. No retries: any
// authenticator failure propagates immediately.
func (r *Resolver) Resolve(ctx context.Context, explicitToken, username, password string) (string, error) {
	if explicitToken != "" {
		return explicitToken, nil
	}

	if username == "" || password == "" {
		return "", errors.ErrMissingCredentials
	}

	cached, ok, err := r.cache.Get(ctx, username, password)
	if err != nil {
		// Treat an unreadable cache as a miss; resolution can still succeed
		// through the web flow.
		r.logger.WarnContext(ctx, "Token cache read failed", "error", err)
		ok = false
	}

	if ok {
		valid, err := r.validator.ValidateToken(ctx, cached)
		if err != nil {
			return "", err
		}
		if valid {
			r.logger.DebugContext(ctx, "Using cached API token", "username", username)
			return cached, nil
		}
		// Stale entry stays in place until the fresh token overwrites it;
		// every resolution re-validates before use, so it can do no harm.
		r.logger.DebugContext(ctx, "Cached API token no longer valid", "username", username)
	}

	authCookie, err := r.auth.Login(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := r.auth.FetchToken(ctx, authCookie)
	if err != nil {
		return "", err
	}

	if err := r.cache.Put(ctx, token, username, password); err != nil {
		// The token itself is good; a failed cache write only costs a fresh
		// login next run.
		r.logger.WarnContext(ctx, "Token cache write failed", "error", err)
	}

	r.logger.InfoContext(ctx, "Derived new API token from credentials", "username", username)

	return token, nil
}
