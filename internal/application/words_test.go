package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain sentence",
			text: "The quick brown fox",
			want: []string{"brown", "fox", "quick", "the"},
		},
		{
			name: "punctuation and case collapse",
			text: "Hello, hello! HELLO?",
			want: []string{"hello"},
		},
		{
			name: "single letters dropped",
			text: "I have a cat",
			want: []string{"cat", "have"},
		},
		{
			name: "apostrophes and hyphens kept inside words",
			text: "it's a well-known fact",
			want: []string{"fact", "it's", "well-known"},
		},
		{
			name: "surrounding quotes trimmed",
			text: "'quoted' words",
			want: []string{"quoted", "words"},
		},
		{
			name: "non latin letters",
			text: "вот это да",
			want: []string{"вот", "да", "это"},
		},
		{
			name: "empty input",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractWords(tt.text))
		})
	}
}
