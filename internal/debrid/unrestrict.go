package debrid

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"rdw/internal/domain"
	"rdw/internal/errors"
)

// AlternativeLink is one variant of a link that unrestricts to multiple
// downloads (e.g. several stream qualities).
type AlternativeLink struct {
	ID              string `json:"id"`
	UnrestrictedURL string `json:"unrestrictedUrl"`
	Filename        string `json:"filename"`
	MimeType        string `json:"mimetype"`
	Quality         string `json:"quality"`
}

// UnrestrictedLink is the normalized result of unrestricting a hoster URL.
// Alternatives is present only when the hoster offered variants; its absence
// (nil, omitted from JSON) is meaningful and distinct from an empty list.
type UnrestrictedLink struct {
	ID              string            `json:"id"`
	OriginalURL     string            `json:"originalUrl"`
	UnrestrictedURL string            `json:"unrestrictedUrl"`
	Filename        string            `json:"filename"`
	Size            int64             `json:"size"`
	Hoster          string            `json:"hoster"`
	MimeType        string            `json:"mimetype"`
	Streamable      bool              `json:"isStreamable"`
	HasMultipleURLs bool              `json:"hasMultipleUrls"`
	Quality         string            `json:"quality,omitempty"`
	Alternatives    []AlternativeLink `json:"collectedUrls,omitempty"`
}

// IsURLSupported reports whether the hoster URL is supported. This is a
// best-effort probe: every failure, transport failures included, collapses
// to false. Callers who need to distinguish failure modes should use
// UnrestrictLink and inspect the error kind.
func (c *Client) IsURLSupported(ctx context.Context, hosterURL, password string) (bool, error) {
	if err := c.requirePremium(); err != nil {
		return false, err
	}

	endpoint := c.baseURL + "/unrestrict/check"
	form := map[string]string{"link": hosterURL, "password": password}

	resp, err := c.http.PostForm(ctx, endpoint, form, domain.Request{Token: c.token})
	if err != nil {
		c.logger.DebugContext(ctx, "Hoster support check failed", "url", hosterURL, "error", err)
		return false, nil
	}

	return resp.StatusCode == http.StatusOK, nil
}

// linkResponse is the POST /unrestrict/link response body.
type linkResponse struct {
	ID          string `json:"id"`
	Link        string `json:"link"`
	Download    string `json:"download"`
	Filename    string `json:"filename"`
	Filesize    int64  `json:"filesize"`
	Host        string `json:"host"`
	MimeType    string `json:"mimeType"`
	Streamable  int    `json:"streamable"`
	Quality     string `json:"quality"`
	Alternative []struct {
		ID       string `json:"id"`
		Download string `json:"download"`
		Filename string `json:"filename"`
		MimeType string `json:"mimeType"`
		Quality  string `json:"quality"`
	} `json:"alternative"`
}

// errorBody is the shape of REST error responses.
type errorBody struct {
	Error string `json:"error"`
}

// UnrestrictLink converts a restricted hoster URL into a directly
// downloadable one. remoteTraffic requests a remote-traffic download.
func (c *Client) UnrestrictLink(ctx context.Context, hosterURL, password string, remoteTraffic bool) (*UnrestrictedLink, error) {
	if err := c.requirePremium(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/unrestrict/link"
	remote := "0"
	if remoteTraffic {
		remote = "1"
	}
	form := map[string]string{"link": hosterURL, "password": password, "remote": remote}

	resp, err := c.http.PostForm(ctx, endpoint, form, domain.Request{Token: c.token})
	if err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrUnrestrictLink, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusServiceUnavailable {
			var body errorBody
			if json.Unmarshal(resp.Body, &body) == nil && body.Error == "traffic_exhausted" {
				return nil, errors.NewAPIError(errors.ErrTrafficExhausted, endpoint, resp.StatusCode)
			}
		}
		return nil, errors.NewAPIError(errors.ErrUnsupportedHoster, endpoint, resp.StatusCode)
	}

	var body linkResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrUnrestrictLink, endpoint, err)
	}

	link := &UnrestrictedLink{
		ID:              body.ID,
		OriginalURL:     unescape(body.Link),
		UnrestrictedURL: unescape(body.Download),
		Filename:        strings.TrimSpace(body.Filename),
		Size:            body.Filesize,
		Hoster:          unescape(body.Host),
		MimeType:        body.MimeType,
		Streamable:      body.Streamable != 0,
	}

	if body.Alternative != nil {
		link.HasMultipleURLs = true
		link.Quality = body.Quality
		link.Alternatives = make([]AlternativeLink, 0, len(body.Alternative))
		for _, alt := range body.Alternative {
			link.Alternatives = append(link.Alternatives, AlternativeLink{
				ID:              alt.ID,
				UnrestrictedURL: unescape(alt.Download),
				Filename:        strings.TrimSpace(alt.Filename),
				MimeType:        alt.MimeType,
				Quality:         alt.Quality,
			})
		}
	}

	return link, nil
}

// UnrestrictFolder expands a folder URL into its member URLs. With
// unrestrictURLs false the raw hoster listing is returned (minus the input
// URL if the hoster echoes it back). With unrestrictURLs true every listed
// URL is unrestricted concurrently and the unrestricted URLs returned.
//
// Fan-out results arrive in completion order: the returned slice has one
// entry per listed URL but NO positional correspondence with the listing.
func (c *Client) UnrestrictFolder(ctx context.Context, folderURL string, unrestrictURLs bool) ([]string, error) {
	if err := c.requirePremium(); err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/unrestrict/folder"
	form := map[string]string{"link": folderURL}

	resp, err := c.http.PostForm(ctx, endpoint, form, domain.Request{Token: c.token})
	if err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrUnrestrictFolder, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewAPIError(errors.ErrUnsupportedHoster, endpoint, resp.StatusCode)
	}

	var listing []string
	if err := json.Unmarshal(resp.Body, &listing); err != nil {
		return nil, errors.NewAPIErrorWithCause(errors.ErrUnrestrictFolder, endpoint, err)
	}

	urls := make([]string, 0, len(listing))
	for _, item := range listing {
		if item == folderURL {
			continue
		}
		urls = append(urls, unescape(item))
	}

	if len(urls) == 0 {
		return nil, errors.NewAPIError(errors.ErrEmptyFolder, endpoint, resp.StatusCode)
	}

	if !unrestrictURLs {
		return urls, nil
	}

	return c.unrestrictAll(ctx, urls)
}

// unrestrictAll fans out one UnrestrictLink call per URL. Worker launches are
// throttled to keep the burst rate against the remote service down; already
// launched workers run to completion. Any worker failure fails the whole
// call.
func (c *Client) unrestrictAll(ctx context.Context, urls []string) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make([]string, 0, len(urls))

	var launchErr error
	for _, u := range urls {
		if err := c.launches.Wait(ctx); err != nil {
			// Context gone, either from a failed worker or the caller.
			launchErr = err
			break
		}
		g.Go(func() error {
			link, err := c.UnrestrictLink(ctx, u, "", false)
			if err != nil {
				return err
			}
			mu.Lock()
			out = append(out, link.UnrestrictedURL)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if launchErr != nil {
		return nil, launchErr
	}

	return out, nil
}
