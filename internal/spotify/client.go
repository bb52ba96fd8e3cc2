// Package spotify implements the client for the external music catalog. The
// catalog requires a client-credentials exchange; the resulting bearer token
// is cached in a single mutex-guarded slot and reused until it expires.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cgsanchez223/strictylalbums-be/internal/cache"
	"github.com/cgsanchez223/strictylalbums-be/internal/middleware"
	"github.com/cgsanchez223/strictylalbums-be/internal/models"
)

const (
	defaultBaseURL  = "https://api.spotify.com/v1"
	defaultTokenURL = "https://accounts.spotify.com/api/token"

	// Single-character searches can return result sets large enough to
	// destabilize the upstream call, so two characters is the floor.
	minQueryLen = 2

	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// Client talks to the external catalog API.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client

	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
}

// NewClient returns a catalog client using the given application credentials.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      defaultBaseURL,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// getAccessToken returns the cached bearer token, performing a fresh
// client-credentials exchange when the slot is empty or expired. The mutex
// keeps concurrent refreshes down to a single in-flight exchange.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiresAt) {
		return c.accessToken, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", models.NewIntegrationError("Error getting catalog access token", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	middleware.CatalogTokenExchanges.Inc()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", models.NewIntegrationError("Error getting catalog access token", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", models.NewIntegrationError("Error getting catalog access token",
			fmt.Errorf("token endpoint returned %d: %s", resp.StatusCode, body))
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", models.NewIntegrationError("Error getting catalog access token", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiresAt = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)

	middleware.Logger.InfoContext(ctx, "catalog access token refreshed",
		slog.Time("expires_at", c.tokenExpiresAt))

	return c.accessToken, nil
}

// invalidateToken clears the cache slot if it still holds the rejected token,
// so a concurrent refresh is not thrown away.
func (c *Client) invalidateToken(rejected string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.accessToken == rejected {
		c.accessToken = ""
		c.tokenExpiresAt = time.Time{}
	}
}

// apiGet performs an authenticated GET against the catalog. A 401 on a cached
// token invalidates the slot and retries exactly once with a fresh credential.
func (c *Client) apiGet(ctx context.Context, operation, rawURL string) ([]byte, error) {
	retried := false
	for {
		token, err := c.getAccessToken(ctx)
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, models.NewIntegrationError("Error calling catalog", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			middleware.CatalogRequests.WithLabelValues(operation, "error").Inc()
			return nil, models.NewIntegrationError("Error calling catalog", err)
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		middleware.CatalogRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return nil, models.NewIntegrationError("Error reading catalog response", readErr)
			}
			return body, nil
		case resp.StatusCode == http.StatusUnauthorized && !retried:
			c.invalidateToken(token)
			retried = true
			continue
		case resp.StatusCode == http.StatusNotFound:
			return nil, models.NewNotFoundError("Album")
		default:
			return nil, models.NewIntegrationError("Error calling catalog",
				fmt.Errorf("%s returned %d: %s", operation, resp.StatusCode, body))
		}
	}
}

type searchResponse struct {
	Albums json.RawMessage `json:"albums"`
}

// SearchAlbums queries the catalog for albums matching query.
func (c *Client) SearchAlbums(ctx context.Context, query string, limit, offset int) (json.RawMessage, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Search query must be at least %d characters", minQueryLen))
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	if offset < 0 {
		offset = 0
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "album")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))

	body, err := c.apiGet(ctx, "search", c.baseURL+"/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, models.NewIntegrationError("Error decoding catalog search response", err)
	}
	return parsed.Albums, nil
}

// GetAlbumDetails fetches one album by its catalog ID. Responses are cached in
// Redis since catalog metadata changes rarely.
func (c *Client) GetAlbumDetails(ctx context.Context, albumID string) (json.RawMessage, error) {
	if albumID == "" {
		return nil, models.NewValidationError("Album ID is required")
	}

	var details json.RawMessage
	err := cache.Aside(ctx, cache.AlbumDetailsKey(albumID), &details, cache.AlbumDetailsTTL, func() error {
		body, err := c.apiGet(ctx, "album_details", c.baseURL+"/albums/"+url.PathEscape(albumID))
		if err != nil {
			return err
		}
		details = body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}
