// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// POS is a Universal Dependencies part-of-speech tag.
type POS string

const (
	POSAdj   POS = "ADJ"
	POSAdp   POS = "ADP"
	POSAdv   POS = "ADV"
	POSAux   POS = "AUX"
	POSCconj POS = "CCONJ"
	POSDet   POS = "DET"
	POSIntj  POS = "INTJ"
	POSNoun  POS = "NOUN"
	POSNum   POS = "NUM"
	POSPart  POS = "PART"
	POSPron  POS = "PRON"
	POSPropn POS = "PROPN"
	POSPunct POS = "PUNCT"
	POSSconj POS = "SCONJ"
	POSSym   POS = "SYM"
	POSVerb  POS = "VERB"
	POSOther POS = "X"
)

// AllPOSTags lists every tag the analyzer can emit.
var AllPOSTags = []POS{
	POSAdj, POSAdp, POSAdv, POSAux, POSCconj, POSDet, POSIntj, POSNoun,
	POSNum, POSPart, POSPron, POSPropn, POSPunct, POSSconj, POSSym,
	POSVerb, POSOther,
}

// IsNounLike reports whether p is NOUN or PROPN.
func (p POS) IsNounLike() bool {
	return p == POSNoun || p == POSPropn
}

// DepSeparableParticle is the dependency label an analyzer assigns to a
// detached separable-verb particle. The particle's Head points at the
// governing verb.
const DepSeparableParticle = "svp"

// Token is one annotated token as produced by an Analyzer. Tokens are
// consumed by the extraction pipeline and live only for the duration of
// one sentence.
type Token struct {
	// Index is the token's position within its sentence.
	Index int

	// Text is the surface form exactly as it appears in the sentence.
	Text string

	// Lemma is the analyzer's default dictionary form.
	Lemma string

	// POS is the Universal Dependencies part-of-speech tag.
	POS POS

	// Dep is the dependency label; DepSeparableParticle marks particles.
	Dep string

	// Head is the Index of the token's syntactic head. Meaningful only
	// when Dep is set; particles point at their governing verb.
	Head int

	// SentStart marks the first token of a sentence.
	SentStart bool

	// LikeURL and LikeEmail flag tokens that look like a URL or an
	// e-mail address; such tokens bypass capitalization rules and
	// compound splitting.
	LikeURL   bool
	LikeEmail bool

	// MorphCase holds morphological case tags (e.g. "Gen", "Nom").
	MorphCase []string

	// IsAlpha reports whether the surface consists solely of letters.
	IsAlpha bool
}

// HasMorphCase reports whether the token carries the given case tag.
func (t Token) HasMorphCase(c string) bool {
	for _, m := range t.MorphCase {
		if m == c {
			return true
		}
	}
	return false
}
