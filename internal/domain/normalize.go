package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics covers the combining diacritical marks block
// (U+0300..U+036F) produced by NFD decomposition of accented letters.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)))

// punctuation is the fixed set stripped from cache keys. Commas matter most:
// stored senses are comma-joined, so a comma must never survive into a key.
const punctuation = ".,!?¿¡;:()'`"

// Normalize converts a token to its cache-key form: trimmed, lowercased,
// accents stripped via NFD decomposition, punctuation removed. Idempotent.
//
// The same function keys the cache and groups gateway results by word;
// the two must never diverge or cache hits and merges silently break.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s, _, _ = transform.String(stripAccents, s)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}
