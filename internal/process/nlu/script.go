package nlu

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

func isDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097F
}

func isTelugu(r rune) bool {
	return r >= 0x0C00 && r <= 0x0C7F
}

func hasDevanagari(text string) bool {
	return strings.IndexFunc(text, isDevanagari) >= 0
}

func hasTelugu(text string) bool {
	return strings.IndexFunc(text, isTelugu) >= 0
}

// hasIndicScript reports whether the text contains Devanagari or Telugu code points.
func hasIndicScript(text string) bool {
	return strings.IndexFunc(text, func(r rune) bool {
		return isDevanagari(r) || isTelugu(r)
	}) >= 0
}

// canonical applies NFC composition so that nukta and vowel-sign sequences
// compare equal to the table entries.
func canonical(text string) string {
	return norm.NFC.String(text)
}

// foldDigits rewrites Devanagari and Telugu digits to ASCII.
func foldDigits(text string) string {
	if !hasIndicScript(text) {
		return text
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= '०' && r <= '९':
			return '0' + (r - '०')
		case r >= '౦' && r <= '౯':
			return '0' + (r - '౦')
		default:
			return r
		}
	}, text)
}

// prepare is the common text preparation for every extractor.
func prepare(text string) string {
	return foldDigits(canonical(strings.TrimSpace(text)))
}

func collapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// latinWords returns the lowercase Latin words of the text.
func latinWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !unicode.IsDigit(r)
	})
}
