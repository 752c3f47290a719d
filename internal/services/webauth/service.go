// Package webauth derives a Real-Debrid API token from account credentials.
//
// Real-Debrid exposes no documented token-issuance API, so this package
// drives the human web flow programmatically: a login request against the
// AJAX login endpoint yields a short-lived auth cookie, which is then
// presented to the token-management page and the token scraped out of the
// rendered HTML. The scrape is inherently brittle and is isolated in
// ExtractToken so a remote markup change requires touching only that one
// function.
package webauth

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"rdw/internal/domain"
	"rdw/internal/errors"
)

// Endpoints holds the web-flow URLs. Overridable for tests.
type Endpoints struct {
	Login     string
	TokenPage string
}

// DefaultEndpoints returns the production Real-Debrid web-flow endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:     "https://real-debrid.com/ajax/login.php",
		TokenPage: "https://real-debrid.com/apitoken",
	}
}

// Service performs the two-step credential-to-token web flow.
type Service struct {
	http      domain.HTTPAdapter
	agents    domain.UserAgentProvider
	endpoints Endpoints
	logger    *slog.Logger
}

// NewService creates a new web authenticator.
func NewService(
	httpAdapter domain.HTTPAdapter,
	agents domain.UserAgentProvider,
	endpoints Endpoints,
	logger *slog.Logger,
) *Service {
	return &Service{
		http:      httpAdapter,
		agents:    agents,
		endpoints: endpoints,
		logger:    logger,
	}
}

// loginResponse is the JSON body returned by the AJAX login endpoint.
type loginResponse struct {
	Error  int    `json:"error"`
	Cookie string `json:"cookie"`
}

// Login submits the credentials to the web login endpoint and returns the
// bare auth cookie value.
//
// The endpoint gives no separate "network down" vs "bad password" signal: a
// well-formed rejecting response maps to ErrInvalidCredentials, while a
// transport failure or a malformed body maps to ErrNetwork.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	req := domain.Request{
		Query: map[string]string{
			"user": username,
			"pass": password,
			// Fixed placeholder challenge fields required by the login form.
			"pin_challenge": "",
			"pin_answer":    "PIN: 000000",
			"time":          strconv.FormatInt(time.Now().Unix(), 10),
		},
		Headers: map[string]string{
			"User-Agent":       s.agents.UserAgent(),
			"X-Requested-With": "XMLHttpRequest",
		},
	}

	s.logger.DebugContext(ctx, "Submitting web login", "username", username)

	resp, err := s.http.Get(ctx, s.endpoints.Login, req)
	if err != nil {
		return "", errors.NewAPIErrorWithCause(errors.ErrNetwork, s.endpoints.Login, err)
	}

	if resp.StatusCode != 200 {
		return "", errors.NewAPIError(errors.ErrInvalidCredentials, s.endpoints.Login, resp.StatusCode)
	}

	var body loginResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return "", errors.NewAPIErrorWithCause(errors.ErrNetwork, s.endpoints.Login, err)
	}

	if body.Error != 0 {
		return "", errors.NewAPIError(errors.ErrInvalidCredentials, s.endpoints.Login, resp.StatusCode)
	}

	// The cookie field arrives as "auth=<value>;".
	cookie := strings.ReplaceAll(body.Cookie, "auth=", "")
	cookie = strings.TrimSpace(strings.ReplaceAll(cookie, ";", ""))

	s.logger.DebugContext(ctx, "Web login successful", "username", username)

	return cookie, nil
}

// FetchToken retrieves the account's current API token by scraping the
// token-management page with the auth cookie attached.
func (s *Service) FetchToken(ctx context.Context, authCookie string) (string, error) {
	req := domain.Request{
		Headers: map[string]string{"User-Agent": s.agents.UserAgent()},
		Cookies: map[string]string{"auth": authCookie},
	}

	resp, err := s.http.Get(ctx, s.endpoints.TokenPage, req)
	if err != nil {
		return "", errors.NewAPIErrorWithCause(errors.ErrNetwork, s.endpoints.TokenPage, err)
	}

	return s.scrape(ctx, resp)
}

// RefreshToken rotates the account's API token by POSTing refresh=1 to the
// token-management page, then scrapes the newly rendered token.
func (s *Service) RefreshToken(ctx context.Context, authCookie string) (string, error) {
	req := domain.Request{
		Headers: map[string]string{"User-Agent": s.agents.UserAgent()},
		Cookies: map[string]string{"auth": authCookie},
	}

	resp, err := s.http.PostForm(ctx, s.endpoints.TokenPage, map[string]string{"refresh": "1"}, req)
	if err != nil {
		return "", errors.NewAPIErrorWithCause(errors.ErrNetwork, s.endpoints.TokenPage, err)
	}

	return s.scrape(ctx, resp)
}

func (s *Service) scrape(ctx context.Context, resp *domain.Response) (string, error) {
	if resp.StatusCode != 200 || len(strings.TrimSpace(string(resp.Body))) == 0 {
		return "", errors.NewAPIError(errors.ErrNetwork, s.endpoints.TokenPage, resp.StatusCode)
	}

	token, err := ExtractToken(resp.Body)
	if err != nil {
		// The remote page changed shape; surface as a network-class failure.
		s.logger.WarnContext(ctx, "Token page scrape failed", "error", err)
		return "", errors.NewAPIErrorWithCause(errors.ErrNetwork, s.endpoints.TokenPage, err)
	}

	return token, nil
}
