package domain

import "strings"

// Platform identifies the video service a URL points at.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformReddit    Platform = "reddit"
	PlatformUnknown   Platform = "unknown"
)

// String returns the string representation of the Platform.
func (p Platform) String() string {
	return string(p)
}

// Classify maps a URL to a supported platform using fixed substring rules.
// Rules are checked in priority order: Instagram reel paths first, then
// YouTube domains, then Reddit. Anything else is PlatformUnknown.
func Classify(url string) Platform {
	switch {
	case strings.Contains(url, "instagram.com/reel"):
		return PlatformInstagram
	case strings.Contains(url, "youtube.com"), strings.Contains(url, "youtu.be"):
		return PlatformYouTube
	case strings.Contains(url, "reddit.com"):
		return PlatformReddit
	default:
		return PlatformUnknown
	}
}
