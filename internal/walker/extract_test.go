package walker

import (
	"reflect"
	"testing"
)

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			"single url",
			"watch this https://youtu.be/abc",
			[]string{"https://youtu.be/abc"},
		},
		{
			"multiple urls in order",
			"https://a.example/1 text http://b.example/2",
			[]string{"https://a.example/1", "http://b.example/2"},
		},
		{
			"no urls",
			"just words, no links here",
			nil,
		},
		{
			"url glued to punctuation is taken whole",
			"(https://youtu.be/abc)",
			[]string{"https://youtu.be/abc)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractURLs(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractURLs(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}
