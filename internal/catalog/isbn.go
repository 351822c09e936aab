package catalog

import (
	"strings"
	"unicode"
)

// MaxISBNLength bounds a normalized isbn.
const MaxISBNLength = 32

// NormalizeISBN removes whitespace and dash separators, so "978-0-13",
// "978 0 13" and "978013" all compare equal.
func NormalizeISBN(isbn string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.Is(unicode.Pd, r) {
			return -1
		}
		return r
	}, isbn)
}
