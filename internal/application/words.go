package application

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractWords splits translated source text into lowercase candidate
// words for vocabulary suggestions. Single-letter tokens are dropped,
// duplicates collapse, and the result is sorted so suggestion buttons
// render deterministically.
func ExtractWords(text string) []string {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '-'
	})

	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		word := strings.ToLower(strings.Trim(token, "'-"))
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		seen[word] = true
	}

	words := make([]string, 0, len(seen))
	for word := range seen {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
