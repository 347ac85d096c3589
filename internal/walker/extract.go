package walker

import "regexp"

var urlPattern = regexp.MustCompile(`https?://\S+`)

// ExtractURLs returns every http(s) URL-shaped substring of a message, in
// order of appearance.
func ExtractURLs(content string) []string {
	return urlPattern.FindAllString(content, -1)
}
