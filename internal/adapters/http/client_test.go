package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdw/internal/domain"
	"rdw/internal/testutil"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	adapter := NewAdapter(5*time.Second, testutil.Logger())
	t.Cleanup(adapter.Close)
	return adapter
}

func TestGet_AppliesRequestOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "v", r.URL.Query().Get("q"))
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		cookie, err := r.Cookie("auth")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc", cookie.Value)
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	adapter := newTestAdapter(t)

	resp, err := adapter.Get(context.Background(), server.URL, domain.Request{
		Query:   map[string]string{"q": "v"},
		Headers: map[string]string{"User-Agent": "custom-agent"},
		Cookies: map[string]string{"auth": "abc"},
		Token:   "tok",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(resp.Body))
}

func TestPostForm_EncodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "https://example.com/f", r.PostFormValue("link"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := newTestAdapter(t)

	resp, err := adapter.PostForm(context.Background(), server.URL,
		map[string]string{"link": "https://example.com/f"}, domain.Request{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGet_DoesNotFollowRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/target" {
			t.Error("redirect was followed")
			return
		}
		http.Redirect(w, r, "/target", http.StatusFound)
	}))
	defer server.Close()

	adapter := newTestAdapter(t)

	resp, err := adapter.Get(context.Background(), server.URL, domain.Request{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode, "redirect responses must be observable")
}

func TestGet_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	adapter := newTestAdapter(t)

	_, err := adapter.Get(context.Background(), server.URL, domain.Request{})
	assert.Error(t, err)
}

func TestClose_Idempotent(t *testing.T) {
	adapter := NewAdapter(time.Second, testutil.Logger())
	adapter.Close()
	adapter.Close()
}
