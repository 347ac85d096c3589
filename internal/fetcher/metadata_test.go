package fetcher

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ferrovax/vidrelay/internal/domain"
)

func TestParseMetadata(t *testing.T) {
	data := []byte(`{"title":"A clip","uploader":"someone","duration":12.5,"ext":"mp4"}`)
	meta, err := parseMetadata(data)
	if err != nil {
		t.Fatalf("parseMetadata() error = %v", err)
	}
	if meta.Title != "A clip" || meta.Uploader != "someone" {
		t.Errorf("parseMetadata() = %+v", meta)
	}
}

func TestParseMetadata_Empty(t *testing.T) {
	_, err := parseMetadata([]byte(`{}`))
	if !errors.Is(err, domain.ErrNoMetadata) {
		t.Errorf("parseMetadata({}) error = %v, want ErrNoMetadata", err)
	}
}

func TestParseMetadata_BadJSON(t *testing.T) {
	if _, err := parseMetadata([]byte("not json")); err == nil {
		t.Error("parseMetadata should fail on malformed input")
	}
}

func TestMetadata_UploaderLabel(t *testing.T) {
	tests := []struct {
		name string
		meta Metadata
		want string
	}{
		{"uploader wins", Metadata{Uploader: "u", Channel: "c", Subreddit: "s"}, "u"},
		{"channel fallback", Metadata{Channel: "c", Subreddit: "s"}, "c"},
		{"subreddit fallback", Metadata{Subreddit: "s"}, "s"},
		{"nothing known", Metadata{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.UploaderLabel(); got != tt.want {
				t.Errorf("UploaderLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetadata_Filename(t *testing.T) {
	meta := Metadata{Title: "A video: about things?", Uploader: "some/user"}
	want := "someuser A video about things.mp4"
	if got := meta.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestMetadata_Filename_FirstLineOnly(t *testing.T) {
	meta := Metadata{Title: "first line\nsecond line", Uploader: "u"}
	if got := meta.Filename(); got != "u first line.mp4" {
		t.Errorf("Filename() = %q, want first line only", got)
	}
}

func TestMetadata_Filename_TruncatesTitle(t *testing.T) {
	meta := Metadata{Title: strings.Repeat("x", 200), Uploader: "u"}
	want := "u " + strings.Repeat("x", 60) + ".mp4"
	if got := meta.Filename(); got != want {
		t.Errorf("Filename() = %q, want 60-char title", got)
	}
}

func TestMetadata_Filename_TruncatesOnRunes(t *testing.T) {
	meta := Metadata{Title: strings.Repeat("a", 59) + "éé", Uploader: "u"}
	want := "u " + strings.Repeat("a", 59) + "é.mp4"
	got := meta.Filename()
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Errorf("Filename() = %q is not valid UTF-8", got)
	}
}

func TestMetadata_Filename_UntitledFallback(t *testing.T) {
	meta := Metadata{Uploader: "u"}
	if got := meta.Filename(); got != "u untitled.mp4" {
		t.Errorf("Filename() = %q, want %q", got, "u untitled.mp4")
	}
}
