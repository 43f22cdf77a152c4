package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fold lowercases s with Turkish casing rules (I→ı, İ→i). Keyword and
// landmark matching always runs on folded text.
//
// A cases.Caser is stateful, so each call builds its own.
func Fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Lower(language.Turkish).String(s)
}
