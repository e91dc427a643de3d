package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ewilliams-labs/vibematch/internal/core/domain"
	"github.com/ewilliams-labs/vibematch/internal/core/ports"
)

// SanitizeVibe strips the markdown code fences the model tends to wrap its
// output in and decodes the remainder into a VibeRecord. Any decode failure
// surfaces the raw text in the error detail; the text is never partially
// interpreted.
func SanitizeVibe(raw string) (domain.VibeRecord, error) {
	clean := stripFences(raw)

	var rec domain.VibeRecord
	if err := json.Unmarshal([]byte(clean), &rec); err != nil {
		return domain.VibeRecord{}, ports.NewError(ports.KindMalformedInference,
			fmt.Sprintf("inference output is not a valid vibe object: %q", raw), err)
	}
	return rec, nil
}

// stripFences removes a leading ``` or ```json marker and a trailing ```
// marker, tolerating their absence.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
			s = s[4:]
		}
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}
	return s
}
