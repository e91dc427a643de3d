package ports

import (
	"context"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
)

// TrackCatalog searches the music catalog for a concrete title/artist pair.
// A nil match with a nil error means the catalog had no result, which is a
// successful "no match", not a failure.
type TrackCatalog interface {
	Match(ctx context.Context, title, artist string) (*domain.TrackMatch, error)
}

// TokenSource supplies the bearer token for catalog calls. Invalidate drops a
// token the catalog rejected so the next Token call performs a fresh exchange.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate(token string)
}
