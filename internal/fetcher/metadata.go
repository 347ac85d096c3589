package fetcher

import (
	"encoding/json"
	"strings"

	"github.com/ferrovax/vidrelay/internal/domain"
)

// maxTitleLen caps the title portion of a derived filename.
const maxTitleLen = 60

// Metadata is the slice of the yt-dlp info dict this system uses.
type Metadata struct {
	Title     string `json:"title"`
	Uploader  string `json:"uploader"`
	Channel   string `json:"channel"`
	Subreddit string `json:"subreddit"`
}

func parseMetadata(data []byte) (*Metadata, error) {
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	if meta.Title == "" && meta.Uploader == "" && meta.Channel == "" && meta.Subreddit == "" {
		return nil, domain.ErrNoMetadata
	}
	return &meta, nil
}

// UploaderLabel resolves the attribution label for a video. The fallback
// chain mirrors what the extractors populate per site: uploader, then
// channel, then subreddit.
func (m *Metadata) UploaderLabel() string {
	switch {
	case m.Uploader != "":
		return m.Uploader
	case m.Channel != "":
		return m.Channel
	case m.Subreddit != "":
		return m.Subreddit
	default:
		return "unknown"
	}
}

// Filename derives the artifact filename: "<uploader> <title>.mp4" with
// the title reduced to its first line and at most maxTitleLen characters,
// then stripped of filesystem-unsafe characters.
func (m *Metadata) Filename() string {
	title := m.Title
	if title == "" {
		title = "untitled"
	}
	if idx := strings.IndexByte(title, '\n'); idx >= 0 {
		title = title[:idx]
	}
	if r := []rune(title); len(r) > maxTitleLen {
		title = string(r[:maxTitleLen])
	}
	return domain.SanitizeFilename(m.UploaderLabel()+" "+title) + ".mp4"
}
