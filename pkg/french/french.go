// Package french provides French-text normalisation and a taboo-word
// filter shared by the lexicon, the candidate and theme generators, the
// orchestrator, and the QA language checks.
package french

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize decomposes accented characters into base + combining marks,
// discards the combining marks, keeps only alphabetic characters, and
// upper-cases the result. "Café Résumé" becomes "CAFERESUME".
func Normalize(s string) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark, e.g. the accent stripped from "é"
		}
		if !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// tabooList holds normalised slurs, discriminatory terms, and explicit
// violence vocabulary that must never surface as a puzzle answer.
var tabooList = buildTabooSet([]string{
	"PUTE", "SALOPE", "CONNARD", "CONNASSE", "ENCULE", "ENFOIRE",
	"BATARD", "MERDE", "PUTAIN", "NEGRE", "BOUGNOULE", "YOUPIN",
	"PEDE", "TARLOUZE", "HANDICAPE", "ATTARDE", "MONGOLIEN",
	"SUICIDE", "VIOL", "VIOLEUR", "MEURTRE", "NAZI", "HITLER",
	"TERRORISTE", "PEDOPHILE",
})

func buildTabooSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[Normalize(w)] = true
	}
	return set
}

// IsTaboo reports whether the normalised form of word appears on the
// taboo list. Callers should normalise the word being tested first if
// they also need the normalised form for other purposes; IsTaboo
// normalises internally regardless.
func IsTaboo(word string) bool {
	return tabooList[Normalize(word)]
}
