package clean

import (
	"strings"
	"unicode"
)

// Honorifics commonly appended to names on municipal pages. Stripped
// repeatedly so that compound suffixes (さん氏 does occur) also disappear.
var honorificSuffixes = []string{"氏", "さん", "様", "君", "先生"}

// NormalizeText trims the string, collapses internal whitespace runs
// (including full-width U+3000) to single spaces and removes control
// characters.
func NormalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeName applies NormalizeText and strips trailing honorifics.
func NormalizeName(s string) string {
	s = NormalizeText(s)
	for {
		stripped := s
		for _, suffix := range honorificSuffixes {
			if trimmed := strings.TrimSuffix(stripped, suffix); trimmed != stripped {
				stripped = strings.TrimRight(trimmed, " ")
			}
		}
		if stripped == s {
			return s
		}
		s = stripped
	}
}

// ContainsJapanese reports whether the string carries at least one kanji,
// hiragana or katakana rune. Roster pages sometimes yield pure-ASCII junk
// (navigation labels, URLs) that is never a name.
func ContainsJapanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return true
		}
	}
	return false
}
