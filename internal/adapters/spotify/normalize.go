package spotify

import (
	"strings"
	"unicode"
)

var noiseTokens = map[string]struct{}{
	"clean":      {},
	"deluxe":     {},
	"edition":    {},
	"edit":       {},
	"explicit":   {},
	"feat":       {},
	"featuring":  {},
	"ft":         {},
	"live":       {},
	"mix":        {},
	"mono":       {},
	"radio":      {},
	"remaster":   {},
	"remastered": {},
	"stereo":     {},
	"version":    {},
}

// normalizeQueryTerm cleans an inference-supplied title or artist before it
// reaches the exact-field search filters. Bracketed qualifiers and dash
// suffixes like "- Remastered 2009" confuse the filters more than they help.
// Falls back to the raw input when cleaning would leave nothing.
func normalizeQueryTerm(input string) string {
	cleaned := stripBracketedSegments(input)
	cleaned = trimDashSuffix(cleaned)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return strings.TrimSpace(input)
	}
	return cleaned
}

// stripBracketedSegments drops (...) and [...] segments whose content is
// catalog noise, e.g. "(feat. Daft Punk)" or "[Remastered]".
func stripBracketedSegments(input string) string {
	var out strings.Builder
	var segment strings.Builder
	depth := 0
	for _, r := range input {
		switch r {
		case '(', '[':
			if depth == 0 {
				segment.Reset()
			}
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
				if depth == 0 && !segmentHasNoiseToken(segment.String()) {
					out.WriteString("(" + segment.String() + ")")
				}
			}
		default:
			if depth == 0 {
				out.WriteRune(r)
			} else {
				segment.WriteRune(r)
			}
		}
	}
	return out.String()
}

// trimDashSuffix drops a trailing " - ..." segment when it is catalog noise.
func trimDashSuffix(input string) string {
	trimmed := strings.TrimSpace(input)
	idx := strings.LastIndex(trimmed, " - ")
	if idx == -1 {
		return input
	}
	if segmentHasNoiseToken(trimmed[idx+3:]) {
		return strings.TrimSpace(trimmed[:idx])
	}
	return input
}

func segmentHasNoiseToken(segment string) bool {
	if strings.TrimSpace(segment) == "" {
		return false
	}
	for _, token := range strings.Fields(cleanSeparators(strings.ToLower(segment))) {
		if _, ok := noiseTokens[token]; ok {
			return true
		}
	}
	return false
}

func cleanSeparators(input string) string {
	var out strings.Builder
	lastSpace := false
	for _, r := range input {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			out.WriteRune(' ')
			lastSpace = true
		}
	}
	return out.String()
}
