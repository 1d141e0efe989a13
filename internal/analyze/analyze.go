// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze defines the linguistic analyzer boundary of the
// pipeline and ships a flat-file lexicon analyzer as the default
// implementation.
package analyze

import (
	"github.com/kardenwort/kardenwort/pkg/types"
)

// Analyzer tokenizes and tags text. Annotate is also invoked on single
// isolated words during compound-part lemmatization, so implementations
// must handle one-word inputs cheaply.
type Analyzer interface {
	// Annotate returns the ordered token sequence for one text unit.
	Annotate(text string) ([]types.Token, error)

	// Segment splits free-running text into sentences. Callers use it
	// only when the input is not already line-separated.
	Segment(text string) ([]string, error)
}

// SeparableVerbPairs maps each governing verb's token index to its
// detached particle. Built once per sentence; particle tokens are
// excluded from independent processing by the caller.
func SeparableVerbPairs(tokens []types.Token) map[int]types.Token {
	var pairs map[int]types.Token
	for _, tok := range tokens {
		if tok.Dep != types.DepSeparableParticle {
			continue
		}
		if pairs == nil {
			pairs = make(map[int]types.Token)
		}
		pairs[tok.Head] = tok
	}
	return pairs
}

// ParticleIndices returns the set of token indices occupied by particles
// in the given pair map.
func ParticleIndices(pairs map[int]types.Token) map[int]bool {
	if len(pairs) == 0 {
		return nil
	}
	set := make(map[int]bool, len(pairs))
	for _, p := range pairs {
		set[p.Index] = true
	}
	return set
}
