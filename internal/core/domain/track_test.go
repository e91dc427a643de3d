package domain

import (
	"encoding/json"
	"testing"
)

func TestNoMatchSummaryOmitsOptionalFields(t *testing.T) {
	b, err := json.Marshal(NoMatchSummary())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"name":"No Match Found"}` {
		t.Errorf("sentinel must carry only the name, got %s", b)
	}
}

func TestSummaryFromMatch(t *testing.T) {
	m := TrackMatch{
		Name:       "Blinding Lights",
		Artists:    "The Weeknd",
		PreviewURL: "https://cdn.test/p.mp3",
		SpotifyURL: "https://open.spotify.com/track/abc",
	}

	b, err := json.Marshal(SummaryFromMatch(m))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Blinding Lights","artist":"The Weeknd","preview_url":"https://cdn.test/p.mp3","spotify_url":"https://open.spotify.com/track/abc"}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}
}

func TestSongCandidateComplete(t *testing.T) {
	tests := []struct {
		name string
		song *SongCandidate
		want bool
	}{
		{name: "nil candidate", song: nil, want: false},
		{name: "missing artist", song: &SongCandidate{Title: "Solo"}, want: false},
		{name: "missing title", song: &SongCandidate{Artist: "Clean Bandit"}, want: false},
		{name: "complete", song: &SongCandidate{Title: "Solo", Artist: "Clean Bandit"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.song.Complete(); got != tt.want {
				t.Errorf("Complete() = %v, want %v", got, tt.want)
			}
		})
	}
}
