// Package wordcount turns regulatory text into word-frequency mappings, per
// chapter of a decoded title document.
package wordcount

import (
	"strings"
	"unicode"
)

// minWordLength drops noise tokens; no stop-word filtering happens here,
// that is a display-time choice.
const minWordLength = 3

// Tokenize lowercases the text, strips every character that is not an ASCII
// letter, apostrophe, or whitespace, splits on whitespace runs, and counts
// the tokens of length >= 3 that survive. Deterministic for a given input.
func Tokenize(text string) map[string]int {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r == '\'', unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	counts := map[string]int{}
	for _, word := range strings.Fields(b.String()) {
		if len(word) < minWordLength {
			continue
		}
		counts[word]++
	}
	return counts
}

// Merge adds every count in src into dst.
func Merge(dst, src map[string]int) {
	for word, count := range src {
		dst[word] += count
	}
}
