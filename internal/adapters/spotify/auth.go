package spotify

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// DefaultTokenURL is the Spotify accounts service token-exchange endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// expirySkew discards tokens slightly before their declared expiry so a
// cached token does not die mid-request.
const expirySkew = 30 * time.Second

// TokenCache exchanges a client id/secret pair for a bearer token and reuses
// it until expiry. At most one exchange is in flight at any time; concurrent
// callers share its outcome. The token is the only state in this process that
// outlives a single request.
type TokenCache struct {
	conf       *clientcredentials.Config
	httpClient *http.Client

	group singleflight.Group

	mu  sync.Mutex
	tok *oauth2.Token
}

// compile-time interface assertion
var _ ports.TokenSource = (*TokenCache)(nil)

// NewTokenCache constructs the cache. tokenURL and httpClient default to the
// real accounts endpoint and a timeout-bound client.
func NewTokenCache(clientID, clientSecret, tokenURL string, httpClient *http.Client) *TokenCache {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &TokenCache{
		conf: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
	}
}

// Token returns the cached bearer token, performing a single coalesced
// exchange when none is cached or the cached one has expired.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	if tok := c.tok; tok != nil && time.Now().Before(tok.Expiry.Add(-expirySkew)) {
		c.mu.Unlock()
		return tok.AccessToken, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("token", func() (any, error) {
		tok, err := c.exchange(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tok = tok
		c.mu.Unlock()
		return tok.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token if it still matches the rejected value,
// so the next Token call performs a fresh exchange. Stale invalidations of an
// already-replaced token are no-ops.
func (c *TokenCache) Invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tok != nil && c.tok.AccessToken == token {
		c.tok = nil
	}
}

func (c *TokenCache) exchange(ctx context.Context) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.conf.Token(ctx)
	if err != nil {
		return nil, ports.NewError(ports.KindAuthUnavailable, "catalog token exchange failed", err)
	}
	return tok, nil
}
