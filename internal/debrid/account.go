package debrid

import (
	"context"
	"net/http"
	"strings"
	"time"

	"rdw/internal/domain"
	"rdw/internal/errors"
)

const (
	serverTimeLayout    = "2006-01-02 15:04:05"
	serverISOTimeLayout = "2006-01-02T15:04:05-0700"
)

// ServerTime fetches the server time as the raw text the API returns.
func (c *Client) ServerTime(ctx context.Context) (string, error) {
	return c.fetchTimeText(ctx, "/time", errors.ErrServerTime)
}

// ServerTimeUnix fetches the server time as a Unix timestamp.
func (c *Client) ServerTimeUnix(ctx context.Context) (int64, error) {
	text, err := c.ServerTime(ctx)
	if err != nil {
		return 0, err
	}
	t, err := time.Parse(serverTimeLayout, text)
	if err != nil {
		return 0, errors.NewAPIErrorWithCause(errors.ErrServerTime, c.baseURL+"/time", err)
	}
	return t.Unix(), nil
}

// ServerISOTime fetches the server time in ISO format as raw text.
func (c *Client) ServerISOTime(ctx context.Context) (string, error) {
	return c.fetchTimeText(ctx, "/time/iso", errors.ErrServerISOTime)
}

// ServerISOTimeUnix fetches the ISO server time as a Unix timestamp.
func (c *Client) ServerISOTimeUnix(ctx context.Context) (int64, error) {
	text, err := c.ServerISOTime(ctx)
	if err != nil {
		return 0, err
	}
	t, err := time.Parse(serverISOTimeLayout, text)
	if err != nil {
		return 0, errors.NewAPIErrorWithCause(errors.ErrServerISOTime, c.baseURL+"/time/iso", err)
	}
	return t.Unix(), nil
}

func (c *Client) fetchTimeText(ctx context.Context, path string, kind error) (string, error) {
	endpoint := c.baseURL + path

	resp, err := c.http.Get(ctx, endpoint, domain.Request{Token: c.token})
	if err != nil {
		return "", errors.NewAPIErrorWithCause(kind, endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.NewAPIError(kind, endpoint, resp.StatusCode)
	}

	return strings.TrimSpace(string(resp.Body)), nil
}

// DisableCurrentToken disables the active API token and returns it in
// redacted form. The underlying transport is torn down afterward regardless
// of outcome, so the client is unusable after this call. A new token can be
// read from the account's token-management page.
func (c *Client) DisableCurrentToken(ctx context.Context) (string, error) {
	defer c.StopSession()

	endpoint := c.baseURL + "/disable_access_token"

	resp, err := c.http.Get(ctx, endpoint, domain.Request{Token: c.token})
	if err != nil {
		return "", errors.NewAPIErrorWithCause(errors.ErrNetwork, endpoint, err)
	}

	switch resp.StatusCode {
	case http.StatusNoContent:
		redacted := RedactToken(c.token)
		c.logger.InfoContext(ctx, "API token disabled", "token", redacted)
		return redacted, nil
	case http.StatusUnauthorized:
		return "", errors.NewAPIError(errors.ErrInvalidAPIToken, endpoint, resp.StatusCode)
	default:
		return "", errors.NewAPIError(errors.ErrNetwork, endpoint, resp.StatusCode)
	}
}

// RedactToken masks the middle of a token, keeping at most the first and
// last few characters visible depending on length.
func RedactToken(token string) string {
	n := len(token)
	switch {
	case n <= 2:
		return strings.Repeat("*", n)
	case n <= 6:
		return token[:1] + strings.Repeat("*", n-2) + token[n-1:]
	default:
		return token[:3] + strings.Repeat("*", n-6) + token[n-3:]
	}
}
