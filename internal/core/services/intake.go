package services

import (
	"strings"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// maxImages bounds how many references survive intake per request.
const maxImages = 5

const inlineImagePrefix = "data:image/"

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// ValidateImages filters a raw request list down to the admissible image
// references. Non-string entries are dropped silently, duplicates collapse to
// their first occurrence, and at most maxImages admissible entries survive.
// An empty admissible set is the only failure.
func ValidateImages(raw []any) ([]domain.ImageRef, error) {
	seen := make(map[string]struct{}, len(raw))
	refs := make([]domain.ImageRef, 0, maxImages)
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}

		ref, ok := classifyImage(s)
		if !ok {
			continue
		}
		if len(refs) < maxImages {
			refs = append(refs, ref)
		}
	}

	if len(refs) == 0 {
		return nil, ports.NewError(ports.KindInvalidInput,
			"no valid images detected: provide URLs ending in JPG, JPEG, PNG, WEBP or GIF, or upload image files as data URIs", nil)
	}
	return refs, nil
}

func classifyImage(s string) (domain.ImageRef, bool) {
	if strings.HasPrefix(s, inlineImagePrefix) {
		return domain.ImageRef{Kind: domain.InlineData, Value: s}, true
	}
	if !strings.HasPrefix(s, "http") {
		return domain.ImageRef{}, false
	}

	// The extension check ignores any query string.
	path := s
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	lower := strings.ToLower(path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return domain.ImageRef{Kind: domain.RemoteURL, Value: s}, true
		}
	}
	return domain.ImageRef{}, false
}
