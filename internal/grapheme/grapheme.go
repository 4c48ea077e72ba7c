package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Single reports whether text is exactly one grapheme cluster.
func Single(text string) bool {
	return Count(text) == 1
}

// IsLetter reports whether key is a single ASCII letter.
//
// Multi-cluster input (pastes, named keys like "tab") never matches.
func IsLetter(key string) bool {
	if !Single(key) || len(key) != 1 {
		return false
	}
	c := key[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
