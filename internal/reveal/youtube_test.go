package reveal

import "testing"

func TestYoutubeVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
		{"not a video url", "https://example.com/song.mp3", ""},
		{"id of wrong length", "https://youtu.be/short", ""},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := YoutubeVideoID(tc.url); got != tc.want {
				t.Fatalf("YoutubeVideoID(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}
