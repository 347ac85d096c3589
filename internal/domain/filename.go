package domain

import "strings"

// filenameReplacer strips characters that are unsafe in filenames on
// common filesystems.
var filenameReplacer = strings.NewReplacer(
	`\`, "",
	"/", "",
	"*", "",
	"?", "",
	":", "",
	`"`, "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFilename removes filesystem-unsafe characters from a candidate
// filename and trims surrounding whitespace. Idempotent.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(filenameReplacer.Replace(s))
}
