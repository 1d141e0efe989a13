// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"testing"

	"github.com/kardenwort/kardenwort/pkg/types"
)

func newGermanAnalyzer() *LexiconAnalyzer {
	a := NewLexiconAnalyzer("de")
	a.Add("ging", "gehen", types.POSVerb)
	a.Add("steht", "stehen", types.POSVerb)
	a.Add("auf", "auf", types.POSAdp, "svp")
	a.Add("er", "er", types.POSPron)
	a.Add("Hauses", "Hauses", types.POSNoun, "Case=Gen")
	a.Add("nach", "nach", types.POSAdp)
	return a
}

func TestAnnotateLexiconLookup(t *testing.T) {
	a := newGermanAnalyzer()
	tokens, err := a.Annotate("Er ging nach Hause.")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 5 {
		t.Fatalf("len(tokens) = %d, want 5", len(tokens))
	}

	// Sentence-initial "Er" retries with the lowercased form.
	if tokens[0].Lemma != "er" || tokens[0].POS != types.POSPron {
		t.Errorf("tokens[0] = %+v, want lemma er / PRON", tokens[0])
	}
	if !tokens[0].SentStart {
		t.Error("first token should carry the sentence-start flag")
	}
	if tokens[1].Lemma != "gehen" || tokens[1].POS != types.POSVerb {
		t.Errorf("tokens[1] = %+v, want lemma gehen / VERB", tokens[1])
	}
	// "Hause" is unknown but capitalized mid-sentence: German noun guess.
	if tokens[3].POS != types.POSNoun {
		t.Errorf("tokens[3].POS = %s, want NOUN", tokens[3].POS)
	}
	if tokens[4].POS != types.POSPunct {
		t.Errorf("tokens[4].POS = %s, want PUNCT", tokens[4].POS)
	}
}

func TestAnnotateMorphCase(t *testing.T) {
	a := newGermanAnalyzer()
	tokens, err := a.Annotate("des Hauses")
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, tok := range tokens {
		if tok.Text == "Hauses" {
			found = true
			if !tok.HasMorphCase("Gen") {
				t.Errorf("Hauses should carry Case=Gen, got %v", tok.MorphCase)
			}
		}
	}
	if !found {
		t.Fatal("token Hauses not produced")
	}
}

func TestAnnotateSeparableParticle(t *testing.T) {
	a := newGermanAnalyzer()
	tokens, err := a.Annotate("Er steht früh auf")
	if err != nil {
		t.Fatal(err)
	}

	pairs := SeparableVerbPairs(tokens)
	if len(pairs) != 1 {
		t.Fatalf("len(pairs) = %d, want 1", len(pairs))
	}
	particle, ok := pairs[1] // "steht" is token 1
	if !ok {
		t.Fatalf("no particle attached to the verb, pairs = %v", pairs)
	}
	if particle.Text != "auf" {
		t.Errorf("particle = %q, want auf", particle.Text)
	}

	idx := ParticleIndices(pairs)
	if !idx[particle.Index] {
		t.Errorf("ParticleIndices missing index %d", particle.Index)
	}
}

func TestAnnotateParticleWithoutVerbIsPlainToken(t *testing.T) {
	a := newGermanAnalyzer()
	tokens, err := a.Annotate("Auf dem Tisch")
	if err != nil {
		t.Fatal(err)
	}
	if pairs := SeparableVerbPairs(tokens); len(pairs) != 0 {
		t.Errorf("pairs = %v, want none without a governing verb", pairs)
	}
}

func TestAnnotateURLAndEmail(t *testing.T) {
	a := NewLexiconAnalyzer("en")
	tokens, err := a.Annotate("See https://example.com or mail me@example.com now")
	if err != nil {
		t.Fatal(err)
	}

	var url, email bool
	for _, tok := range tokens {
		if tok.LikeURL {
			url = true
			if tok.Text != "https://example.com" {
				t.Errorf("URL token split: %q", tok.Text)
			}
		}
		if tok.LikeEmail {
			email = true
		}
	}
	if !url {
		t.Error("no URL token flagged")
	}
	if !email {
		t.Error("no email token flagged")
	}
}

func TestAnnotateKeepsHyphenatedTokenWhole(t *testing.T) {
	a := NewLexiconAnalyzer("de")
	tokens, err := a.Annotate("Der Online-Shop öffnet")
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, tok := range tokens {
		if tok.Text == "Online-Shop" {
			found = true
		}
	}
	if !found {
		t.Errorf("hyphenated token was split: %v", tokens)
	}
}

func TestSegment(t *testing.T) {
	a := NewLexiconAnalyzer("de")
	sents, err := a.Segment("Er kam an. Sie ging weg! Und dann?")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Er kam an.", "Sie ging weg!", "Und dann?"}
	if len(sents) != len(want) {
		t.Fatalf("len(sents) = %d, want %d: %v", len(sents), len(want), sents)
	}
	for i := range want {
		if sents[i] != want[i] {
			t.Errorf("sents[%d] = %q, want %q", i, sents[i], want[i])
		}
	}
}

func TestSentenceStartResetAfterTerminal(t *testing.T) {
	a := newGermanAnalyzer()
	tokens, err := a.Annotate("Er ging. Er kam.")
	if err != nil {
		t.Fatal(err)
	}
	starts := 0
	for _, tok := range tokens {
		if tok.SentStart {
			starts++
		}
	}
	if starts != 2 {
		t.Errorf("sentence starts = %d, want 2", starts)
	}
}
