// Package spotify adapts the Spotify Web API as the track catalog: a
// client-credentials token cache plus a single-result track search.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zmb3/spotify/v2"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// DefaultAPIURL is the Spotify Web API base.
const DefaultAPIURL = "https://api.spotify.com/v1"

// Client searches the catalog for concrete title/artist pairs.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     ports.TokenSource
}

// compile-time interface assertion
var _ ports.TrackCatalog = (*Client)(nil)

// NewClient constructs a catalog client. baseURL and httpClient default to
// the real Web API and a timeout-bound client.
func NewClient(tokens ports.TokenSource, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

// Match looks up the single top catalog hit for the title/artist pair. A nil
// match with a nil error means the catalog had no result. When the catalog
// rejects the bearer token, the cache is invalidated and the search retried
// exactly once with a fresh token.
func (c *Client) Match(ctx context.Context, title, artist string) (*domain.TrackMatch, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	match, rejected, err := c.searchOnce(ctx, token, title, artist)
	if !rejected {
		return match, err
	}

	c.tokens.Invalidate(token)
	token, err = c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	match, _, err = c.searchOnce(ctx, token, title, artist)
	return match, err
}

// searchOnce performs one search round trip. The middle return value reports
// that the catalog rejected the bearer token.
func (c *Client) searchOnce(ctx context.Context, token, title, artist string) (*domain.TrackMatch, bool, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return nil, false, ports.NewError(ports.KindCatalogUnavailable, "invalid search url", err)
	}

	query := searchURL.Query()
	query.Set("q", fmt.Sprintf("track:%s artist:%s", normalizeQueryTerm(title), normalizeQueryTerm(artist)))
	query.Set("type", "track")
	query.Set("limit", "1")
	searchURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return nil, false, ports.NewError(ports.KindCatalogUnavailable, "failed to build search request", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, ports.NewError(ports.KindCatalogUnavailable, "catalog search request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, true, ports.NewError(ports.KindCatalogUnavailable, "catalog rejected the bearer token", nil)
	case resp.StatusCode != http.StatusOK:
		return nil, false, ports.NewError(ports.KindCatalogUnavailable,
			fmt.Sprintf("catalog search status %d", resp.StatusCode), nil)
	}

	var body spotify.SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, ports.NewError(ports.KindCatalogUnavailable, "catalog search decode error", err)
	}

	if body.Tracks == nil || len(body.Tracks.Tracks) == 0 {
		return nil, false, nil
	}

	match := normalizeTrack(body.Tracks.Tracks[0])
	return &match, false, nil
}

// normalizeTrack flattens a raw catalog track into the domain shape.
func normalizeTrack(t spotify.FullTrack) domain.TrackMatch {
	names := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		names = append(names, a.Name)
	}

	artwork := ""
	if len(t.Album.Images) > 0 {
		artwork = t.Album.Images[0].URL
	}

	return domain.TrackMatch{
		Name:          t.Name,
		Artists:       strings.Join(names, ", "),
		PreviewURL:    t.PreviewURL,
		SpotifyURL:    t.ExternalURLs["spotify"],
		AlbumImageURL: artwork,
	}
}
