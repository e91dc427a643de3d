package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

const searchResultJSON = `{
  "tracks": {
    "items": [
      {
        "name": "Blinding Lights",
        "artists": [{"name": "The Weeknd"}, {"name": "ROSALÍA"}],
        "preview_url": "https://cdn.test/preview.mp3",
        "external_urls": {"spotify": "https://open.spotify.com/track/abc"},
        "album": {
          "name": "After Hours",
          "images": [
            {"url": "https://cdn.test/cover-large.jpg", "height": 640, "width": 640},
            {"url": "https://cdn.test/cover-small.jpg", "height": 64, "width": 64}
          ]
        }
      }
    ]
  }
}`

const emptyResultJSON = `{"tracks": {"items": []}}`

// stubTokens is a canned TokenSource.
type stubTokens struct {
	tokens      []string
	calls       int
	invalidated []string
	err         error
}

func (s *stubTokens) Token(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	idx := s.calls
	if idx >= len(s.tokens) {
		idx = len(s.tokens) - 1
	}
	s.calls++
	return s.tokens[idx], nil
}

func (s *stubTokens) Invalidate(token string) {
	s.invalidated = append(s.invalidated, token)
}

func TestClient_Match(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-1" {
			t.Errorf("unexpected auth header %q", auth)
		}
		q := r.URL.Query()
		query = q.Get("q")
		if q.Get("type") != "track" || q.Get("limit") != "1" {
			t.Errorf("unexpected query params: %v", q)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchResultJSON))
	}))
	defer srv.Close()

	tokens := &stubTokens{tokens: []string{"tok-1"}}
	c := NewClient(tokens, srv.URL, srv.Client())

	match, err := c.Match(context.Background(), "Blinding Lights", "The Weeknd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}

	if query != "track:Blinding Lights artist:The Weeknd" {
		t.Errorf("unexpected search query %q", query)
	}
	if match.Name != "Blinding Lights" {
		t.Errorf("unexpected name %q", match.Name)
	}
	if match.Artists != "The Weeknd, ROSALÍA" {
		t.Errorf("expected comma-joined artists, got %q", match.Artists)
	}
	if match.PreviewURL != "https://cdn.test/preview.mp3" {
		t.Errorf("unexpected preview %q", match.PreviewURL)
	}
	if match.SpotifyURL != "https://open.spotify.com/track/abc" {
		t.Errorf("unexpected spotify url %q", match.SpotifyURL)
	}
	if match.AlbumImageURL != "https://cdn.test/cover-large.jpg" {
		t.Errorf("expected first-listed artwork, got %q", match.AlbumImageURL)
	}
}

func TestClient_Match_NoResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(emptyResultJSON))
	}))
	defer srv.Close()

	c := NewClient(&stubTokens{tokens: []string{"tok-1"}}, srv.URL, srv.Client())

	match, err := c.Match(context.Background(), "Nonexistent", "Nobody")
	if err != nil {
		t.Fatalf("empty result set must not be an error, got %v", err)
	}
	if match != nil {
		t.Errorf("expected no match, got %+v", match)
	}
}

func TestClient_Match_CatalogErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewClient(&stubTokens{tokens: []string{"tok-1"}}, srv.URL, srv.Client())
			_, err := c.Match(context.Background(), "Title", "Artist")
			if err == nil {
				t.Fatal("expected error")
			}
			if kind := ports.KindOf(err); kind != ports.KindCatalogUnavailable {
				t.Errorf("expected kind %s, got %s (%v)", ports.KindCatalogUnavailable, kind, err)
			}
		})
	}
}

func TestClient_Match_RetriesOnceOnRejectedToken(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			http.Error(w, `{"error":{"status":401}}`, http.StatusUnauthorized)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer tok-2" {
			t.Errorf("retry must use the fresh token, got %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(searchResultJSON))
	}))
	defer srv.Close()

	tokens := &stubTokens{tokens: []string{"tok-1", "tok-2"}}
	c := NewClient(tokens, srv.URL, srv.Client())

	match, err := c.Match(context.Background(), "Blinding Lights", "The Weeknd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if match == nil {
		t.Fatal("expected a match after the retry")
	}
	if attempts.Load() != 2 {
		t.Errorf("expected exactly 2 search attempts, got %d", attempts.Load())
	}
	if len(tokens.invalidated) != 1 || tokens.invalidated[0] != "tok-1" {
		t.Errorf("expected tok-1 invalidated, got %v", tokens.invalidated)
	}
}

func TestClient_Match_RejectedTokenTwiceFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"status":401}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &stubTokens{tokens: []string{"tok-1", "tok-2"}}
	c := NewClient(tokens, srv.URL, srv.Client())

	_, err := c.Match(context.Background(), "Title", "Artist")
	if err == nil {
		t.Fatal("expected error after second rejection")
	}
	if kind := ports.KindOf(err); kind != ports.KindCatalogUnavailable {
		t.Errorf("expected kind %s, got %s", ports.KindCatalogUnavailable, kind)
	}
	if len(tokens.invalidated) != 1 {
		t.Errorf("expected exactly one invalidation, got %v", tokens.invalidated)
	}
}

func TestClient_Match_TokenFailurePassesThrough(t *testing.T) {
	authErr := ports.NewError(ports.KindAuthUnavailable, "catalog token exchange failed", nil)
	c := NewClient(&stubTokens{err: authErr}, "http://unused.test", nil)

	_, err := c.Match(context.Background(), "Title", "Artist")
	if err == nil {
		t.Fatal("expected error")
	}
	if kind := ports.KindOf(err); kind != ports.KindAuthUnavailable {
		t.Errorf("expected kind %s, got %s", ports.KindAuthUnavailable, kind)
	}
}
