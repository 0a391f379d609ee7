package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	wordLower = cases.Lower(language.Und)
	wordTitle = cases.Title(language.English)
)

// NormalizeWord converts transcript word text to NFC, lowercases it, and trims
// surrounding punctuation and whitespace. Inner apostrophes and hyphens are kept.
func NormalizeWord(text string) string {
	composed := norm.NFC.String(strings.TrimSpace(text))
	trimmed := strings.TrimFunc(composed, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
	})
	return wordLower.String(trimmed)
}

// TitleCase renders a hyphenated run name like "2026-01-02-amber-falcon" as a
// human label "Amber Falcon".
func TitleCase(runName string) string {
	parts := strings.Split(runName, "-")
	words := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || strings.IndexFunc(part, unicode.IsLetter) < 0 {
			continue
		}
		words = append(words, wordTitle.String(part))
	}
	return strings.Join(words, " ")
}
