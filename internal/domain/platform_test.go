package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want Platform
	}{
		{"instagram reel", "https://www.instagram.com/reel/Cxyz123/", PlatformInstagram},
		{"youtube watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", PlatformYouTube},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", PlatformYouTube},
		{"reddit post", "https://www.reddit.com/r/videos/comments/abc/", PlatformReddit},
		{"old reddit", "https://old.reddit.com/r/videos/comments/abc/", PlatformReddit},
		{"instagram profile is not a reel", "https://www.instagram.com/someuser/", PlatformUnknown},
		{"plain link", "https://example.com/page", PlatformUnknown},
		{"empty", "", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassify_InstagramReelBeforeReddit(t *testing.T) {
	// A URL matching several rules resolves to the first one in priority order.
	url := "https://www.instagram.com/reel/abc?shared=reddit.com"
	if got := Classify(url); got != PlatformInstagram {
		t.Errorf("Classify(%q) = %q, want %q", url, got, PlatformInstagram)
	}
}
