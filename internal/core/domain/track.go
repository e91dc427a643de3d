package domain

// TrackMatch is a normalized catalog search hit ready for display and playback.
// Optional fields are empty when the catalog entry lacks them.
type TrackMatch struct {
	Name          string
	Artists       string // comma-joined contributor names
	PreviewURL    string // many catalog entries lack a preview
	SpotifyURL    string
	AlbumImageURL string
}

// SentinelSongName is the placeholder used when no track could be resolved.
const SentinelSongName = "No Match Found"

// SongSummary is the wire shape of the recommended_song response field:
// either a normalized catalog match or the sentinel with all other fields omitted.
type SongSummary struct {
	Name       string `json:"name"`
	Artist     string `json:"artist,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	SpotifyURL string `json:"spotify_url,omitempty"`
	AlbumImage string `json:"album_image,omitempty"`
}

// NoMatchSummary returns the fixed sentinel summary.
func NoMatchSummary() SongSummary {
	return SongSummary{Name: SentinelSongName}
}

// SummaryFromMatch converts a catalog match into the response shape.
func SummaryFromMatch(m TrackMatch) SongSummary {
	return SongSummary{
		Name:       m.Name,
		Artist:     m.Artists,
		PreviewURL: m.PreviewURL,
		SpotifyURL: m.SpotifyURL,
		AlbumImage: m.AlbumImageURL,
	}
}
