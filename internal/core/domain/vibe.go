package domain

// ImageRefKind discriminates the two admissible image reference forms.
type ImageRefKind string

const (
	RemoteURL  ImageRefKind = "url"
	InlineData ImageRefKind = "data"
)

// ImageRef is one validated image reference: either a direct URL or an
// inline-encoded data URI. Both forms travel to the inference provider as-is.
type ImageRef struct {
	Kind  ImageRefKind
	Value string
}

// SongCandidate is the title/artist pair the inference step suggests for the vibe.
type SongCandidate struct {
	Title  string `json:"song_name"`
	Artist string `json:"artist"`
}

// Complete reports whether the candidate carries enough data to search the catalog.
func (s *SongCandidate) Complete() bool {
	return s != nil && s.Title != "" && s.Artist != ""
}

// VibeRecord is the structured output of the inference step. It lives for one
// request only and is never persisted.
type VibeRecord struct {
	Aesthetic string         `json:"aesthetic"`
	Mood      string         `json:"mood"`
	Song      *SongCandidate `json:"recommended_song,omitempty"`
}

// VibeAnalysis is the full pipeline result returned to the caller.
type VibeAnalysis struct {
	Aesthetic       string      `json:"aesthetic"`
	Mood            string      `json:"mood"`
	RecommendedSong SongSummary `json:"recommended_song"`
}
