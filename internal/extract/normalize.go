// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"unicode"

	"github.com/kardenwort/kardenwort/pkg/types"
)

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	out := make([]rune, len(runes))
	out[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		out[i] = unicode.ToLower(runes[i])
	}
	return string(out)
}

// isAllUpper reports whether s consists of upper-case letters only and is
// longer than one rune.
func isAllUpper(s string) bool {
	runes := []rune(s)
	if len(runes) <= 1 {
		return false
	}
	seenLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			seenLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return seenLetter
}

// hasInternalUpper reports whether any rune after the first is upper-case.
func hasInternalUpper(s string) bool {
	first := true
	for _, r := range s {
		if first {
			first = false
			continue
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// startsUpper reports whether the first rune is upper-case.
func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// defaultLemma derives the token's default lemma: the genitive correction
// followed by the capitalization policy.
func (e *Extractor) defaultLemma(tok types.Token) string {
	return e.formatLemmaCase(tok, e.correctedLemma(tok))
}

// correctedLemma applies the German genitive-s fix: a genitive noun whose
// lemma kept its trailing "s" is trimmed when the trimmed form
// capitalizes to a dictionary word.
func (e *Extractor) correctedLemma(tok types.Token) string {
	lemma := tok.Lemma
	if !e.opts.FixGenitive || e.opts.Language != "de" {
		return lemma
	}
	if !tok.POS.IsNounLike() || !tok.HasMorphCase("Gen") {
		return lemma
	}
	if !strings.HasSuffix(lemma, "s") || len([]rune(lemma)) <= 1 {
		return lemma
	}
	trimmed := strings.TrimSuffix(lemma, "s")
	if e.dict.Contains(capitalize(trimmed)) {
		return trimmed
	}
	return lemma
}

// formatLemmaCase applies the capitalization policy. Acronyms and
// camel-cased surfaces pass through verbatim; URL-like tokens are
// lower-cased wholesale.
func (e *Extractor) formatLemmaCase(tok types.Token, lemma string) string {
	if tok.LikeURL || tok.LikeEmail {
		return strings.ToLower(lemma)
	}

	if isAllUpper(tok.Text) || hasInternalUpper(tok.Text) {
		return tok.Text
	}

	if e.opts.ForceNounCaps && e.opts.Language == "de" && tok.POS.IsNounLike() {
		return capitalize(lemma)
	}
	if e.opts.ForceProperNounCaps && tok.POS == types.POSPropn {
		return capitalize(lemma)
	}

	// Sentence-initial capitalization must not leak into non-nouns; the
	// analyzer lemma is already the uncapitalized form.
	return lemma
}
