package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgsanchez223/strictylalbums-be/internal/cache"
	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

func init() {
	// Tests exercise the client without Redis.
	cache.SetClient(nil)
}

// newTestClient wires a client against a fake token endpoint and a fake API.
// tokenCalls counts credential exchanges.
func newTestClient(t *testing.T, api http.HandlerFunc, tokenCalls *atomic.Int64, expiresIn int) *Client {
	t.Helper()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "token exchange must use basic auth")
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		n := tokenCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"token-%d","token_type":"Bearer","expires_in":%d}`, n, expiresIn)
	}))
	t.Cleanup(tokenSrv.Close)

	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	c := NewClient("id", "secret")
	c.tokenURL = tokenSrv.URL
	c.baseURL = apiSrv.URL
	return c
}

func TestSearchAlbums_ReusesCachedToken(t *testing.T) {
	var tokenCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		assert.Equal(t, "album", r.URL.Query().Get("type"))
		fmt.Fprint(w, `{"albums":{"items":[]}}`)
	}, &tokenCalls, 3600)

	_, err := c.SearchAlbums(context.Background(), "radiohead", 10, 0)
	require.NoError(t, err)
	_, err = c.SearchAlbums(context.Background(), "bowie", 10, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), tokenCalls.Load(), "second search must reuse the cached token")
}

func TestSearchAlbums_RefreshesExpiredToken(t *testing.T) {
	var tokenCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"albums":{"items":[]}}`)
	}, &tokenCalls, 3600)

	_, err := c.SearchAlbums(context.Background(), "radiohead", 10, 0)
	require.NoError(t, err)

	// Force the cached token past its lifetime.
	c.mu.Lock()
	c.tokenExpiresAt = time.Now().Add(-time.Second)
	c.mu.Unlock()

	_, err = c.SearchAlbums(context.Background(), "bowie", 10, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), tokenCalls.Load())
}

func TestSearchAlbums_RetriesOnceOnUnauthorized(t *testing.T) {
	var tokenCalls atomic.Int64
	var apiCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if apiCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"albums":{"items":[]}}`)
	}, &tokenCalls, 3600)

	_, err := c.SearchAlbums(context.Background(), "radiohead", 10, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2), apiCalls.Load())
	assert.Equal(t, int64(2), tokenCalls.Load())
}

func TestSearchAlbums_UnauthorizedTwiceFails(t *testing.T) {
	var tokenCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, &tokenCalls, 3600)

	_, err := c.SearchAlbums(context.Background(), "radiohead", 10, 0)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeIntegration, appErr.Code)
	assert.Equal(t, int64(2), tokenCalls.Load(), "exactly one retry on 401")
}

func TestSearchAlbums_QueryTooShort(t *testing.T) {
	c := NewClient("id", "secret")

	for _, q := range []string{"", "a", " a "} {
		_, err := c.SearchAlbums(context.Background(), q, 10, 0)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr, "query %q", q)
		assert.Equal(t, models.CodeValidation, appErr.Code)
	}
}

func TestSearchAlbums_ClampsLimit(t *testing.T) {
	var tokenCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{"albums":{"items":[]}}`)
	}, &tokenCalls, 3600)

	_, err := c.SearchAlbums(context.Background(), "radiohead", 500, 0)
	require.NoError(t, err)
}

func TestGetAlbumDetails_NotFound(t *testing.T) {
	var tokenCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, &tokenCalls, 3600)

	_, err := c.GetAlbumDetails(context.Background(), "missing")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestGetAlbumDetails_ReturnsBody(t *testing.T) {
	var tokenCalls atomic.Int64

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/albums/abc123", r.URL.Path)
		fmt.Fprint(w, `{"id":"abc123","name":"OK Computer"}`)
	}, &tokenCalls, 3600)

	body, err := c.GetAlbumDetails(context.Background(), "abc123")
	require.NoError(t, err)

	var album struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(body, &album))
	assert.Equal(t, "OK Computer", album.Name)
}

func TestGetAlbumDetails_EmptyID(t *testing.T) {
	c := NewClient("id", "secret")

	_, err := c.GetAlbumDetails(context.Background(), "")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
}

func TestTokenEndpointFailure(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer tokenSrv.Close()

	c := NewClient("id", "secret")
	c.tokenURL = tokenSrv.URL

	_, err := c.SearchAlbums(context.Background(), "radiohead", 10, 0)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeIntegration, appErr.Code)
}
