package domain

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean name untouched", "uploader title.mp4", "uploader title.mp4"},
		{"strips all unsafe characters", `a\b/c*d?e:f"g<h>i|j`, "abcdefghij"},
		{"trims whitespace", "  spaced out  ", "spaced out"},
		{"unsafe then trim", ` what? a "title" `, "what a title"},
		{"empty", "", ""},
		{"only unsafe", `\/*?:"<>|`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_Idempotent(t *testing.T) {
	inputs := []string{
		`a\b/c*d?e:f"g<h>i|j`,
		"  spaced out  ",
		"already clean.mp4",
	}
	for _, in := range inputs {
		once := SanitizeFilename(in)
		twice := SanitizeFilename(once)
		if once != twice {
			t.Errorf("SanitizeFilename not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
