// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"github.com/kardenwort/kardenwort/internal/compound"
	"github.com/kardenwort/kardenwort/pkg/types"
)

// lemmatizePart computes the initial lemma for one compound component by
// running the analyzer on the isolated word. Noun components prefer a
// dictionary-present capitalized form. Results are cached; the same
// components recur constantly across a text.
func (e *Extractor) lemmatizePart(part string) string {
	if part == "" {
		return ""
	}

	if isAllUpper(part) || hasInternalUpper(part) {
		return part
	}

	if lemma, ok := e.partCache.Get(part); ok {
		return lemma
	}

	lemma := e.lemmatizePartUncached(part)
	e.partCache.Add(part, lemma)
	return lemma
}

func (e *Extractor) lemmatizePartUncached(part string) string {
	tokens, err := e.analyzer.Annotate(part)
	if err != nil {
		fmt.Fprintf(e.warn, "warning: analyzing compound part %q: %v\n", part, err)
		return ""
	}
	if len(tokens) == 0 {
		return ""
	}
	tok := tokens[0]

	if !tok.POS.IsNounLike() {
		return tok.Lemma
	}

	capLemma := capitalize(tok.Lemma)
	if e.dict.Contains(capLemma) {
		return capLemma
	}
	if capPart := capitalize(part); e.dict.Contains(capPart) {
		return capPart
	}
	return capLemma
}

// formatComponentCase normalizes a resolved component to
// first-letter-upper, rest-lower. Very short components pass through.
func formatComponentCase(component string) string {
	if len([]rune(component)) < 2 {
		return component
	}
	return capitalize(component)
}

// dissect runs the automaton decomposer for one token, honouring the
// configured split mode and singularization policy.
func (e *Extractor) dissect(tok types.Token) ([]string, error) {
	makeSingular := false
	switch e.opts.Split.Singularize {
	case types.SingularizeAll:
		makeSingular = true
	case types.SingularizeNone:
		makeSingular = false
	default: // only-nouns
		makeSingular = tok.POS.IsNounLike()
	}

	base := func(onlyNouns bool) ([]string, error) {
		parts, err := e.splitter.Dissect(tok.Text, compound.DissectOptions{
			MakeSingular: makeSingular,
			OnlyNouns:    onlyNouns,
			MaskUnknown:  e.opts.Split.MaskUnknown,
		})
		if err != nil {
			return nil, err
		}
		if e.opts.Split.SkipMergeFractions {
			return parts, nil
		}
		return compound.MergeFractions(parts), nil
	}

	if e.opts.Split.Mode == types.SplitCombined {
		restricted, err := base(true)
		if err != nil {
			return nil, err
		}
		unrestricted, err := base(false)
		if err != nil {
			return nil, err
		}
		return append(restricted, unrestricted...), nil
	}

	return base(e.opts.Split.Mode != types.SplitAny)
}
