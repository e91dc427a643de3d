package ports

import (
	"context"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
)

// VibeInferrer sends validated images to the vision inference provider and
// returns its raw text output, expected to contain one JSON object.
type VibeInferrer interface {
	Infer(ctx context.Context, refs []domain.ImageRef) (string, error)
}
