package debrid

import (
	"context"
	"net/http"

	"rdw/internal/domain"
	"rdw/internal/errors"
)

// TokenProbe validates API tokens with a minimal authenticated request. It
// implements domain.TokenValidator for the resolver, which runs before any
// Client exists.
type TokenProbe struct {
	http    domain.HTTPAdapter
	baseURL string
}

// NewTokenProbe creates a token validator against the given API base URL.
func NewTokenProbe(httpAdapter domain.HTTPAdapter, baseURL string) *TokenProbe {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &TokenProbe{http: httpAdapter, baseURL: baseURL}
}

// ValidateToken issues GET /user with the candidate token. A 200 means the
// token is still good; any other well-formed response means it is not.
// Transport failures are returned as errors, not as invalidity.
func (p *TokenProbe) ValidateToken(ctx context.Context, token string) (bool, error) {
	endpoint := p.baseURL + "/user"

	resp, err := p.http.Get(ctx, endpoint, domain.Request{Token: token})
	if err != nil {
		return false, errors.NewAPIErrorWithCause(errors.ErrNetwork, endpoint, err)
	}

	return resp.StatusCode == http.StatusOK, nil
}
