package webauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "rdw/internal/adapters/http"
	"rdw/internal/errors"
	"rdw/internal/testutil"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	adapter := httpadapter.NewAdapter(5*time.Second, testutil.Logger())
	t.Cleanup(adapter.Close)

	return NewService(adapter, StaticAgent("test-agent/1.0"), Endpoints{
		Login:     server.URL + "/ajax/login.php",
		TokenPage: server.URL + "/apitoken",
	}, testutil.Logger())
}

func TestLogin_Success(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ajax/login.php", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("user"))
		assert.Equal(t, "hunter2", r.URL.Query().Get("pass"))
		assert.Equal(t, "", r.URL.Query().Get("pin_challenge"))
		assert.Equal(t, "PIN: 000000", r.URL.Query().Get("pin_answer"))
		assert.NotEmpty(t, r.URL.Query().Get("time"))
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":0,"cookie":"auth=XYZ123;"}`))
	}))

	cookie, err := service.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "XYZ123", cookie)
}

func TestLogin_RejectedCredentials(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":1,"cookie":""}`))
	}))

	_, err := service.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLogin_NonOKStatus(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := service.Login(context.Background(), "alice", "hunter2")
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLogin_TransportFailureIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // Connection refused from here on.

	adapter := httpadapter.NewAdapter(time.Second, testutil.Logger())
	defer adapter.Close()

	service := NewService(adapter, StaticAgent("test-agent/1.0"), Endpoints{
		Login:     server.URL + "/ajax/login.php",
		TokenPage: server.URL + "/apitoken",
	}, testutil.Logger())

	_, err := service.Login(context.Background(), "alice", "hunter2")
	assert.ErrorIs(t, err, errors.ErrNetwork)
	assert.NotErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLogin_MalformedBodyIsNetworkError(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))

	_, err := service.Login(context.Background(), "alice", "hunter2")
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestFetchToken_Success(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apitoken", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		cookie, err := r.Cookie("auth")
		if assert.NoError(t, err) {
			assert.Equal(t, "XYZ123", cookie.Value)
		}

		_, _ = w.Write([]byte(tokenPageFixture))
	}))

	token, err := service.FetchToken(context.Background(), "XYZ123")
	require.NoError(t, err)
	assert.Equal(t, "TOKEN999", token)
}

func TestFetchToken_NonOKStatus(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := service.FetchToken(context.Background(), "XYZ123")
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestFetchToken_EmptyBody(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	_, err := service.FetchToken(context.Background(), "XYZ123")
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestFetchToken_PageChangedShape(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><p>redesigned page</p></body></html>`))
	}))

	_, err := service.FetchToken(context.Background(), "XYZ123")
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestRefreshToken_PostsRefreshField(t *testing.T) {
	service := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1", r.PostFormValue("refresh"))
		cookie, err := r.Cookie("auth")
		if assert.NoError(t, err) {
			assert.Equal(t, "XYZ123", cookie.Value)
		}

		page := `<html><body><script>document.querySelectorAll('#token');el.value = 'ROTATED42';</script></body></html>`
		_, _ = w.Write([]byte(page))
	}))

	token, err := service.RefreshToken(context.Background(), "XYZ123")
	require.NoError(t, err)
	assert.Equal(t, "ROTATED42", token)
}
