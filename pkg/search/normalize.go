package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacritics is the U+0300..U+036F block. Marks outside it
// (e.g. Hangul or Devanagari signs) are kept.
var combiningDiacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// Normalize lowercases s, decomposes it (NFD) and drops combining
// diacritics, so "Hó" and "ho" compare equal. Index keys and query
// terms must both go through it.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	// transform.Chain keeps state between calls, build one per call so
	// Normalize is safe from any goroutine
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacritics)))
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Fields splits normalized text into words on runs of whitespace.
func Fields(s string) []string {
	return strings.Fields(s)
}
